package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Rooms(ctx context.Context, args []string) error
	Room(ctx context.Context, args []string) error
	AddRoom(ctx context.Context) error
	EditRoom(ctx context.Context, args []string) error
	Images(ctx context.Context, args []string) error
	DeleteRoom(ctx context.Context, args []string) error
	Password(ctx context.Context, args []string) error

	TimeSlots(ctx context.Context, args []string) error
	AddSlot(ctx context.Context, args []string) error
	DeleteSlot(ctx context.Context, args []string) error
	Availability(ctx context.Context, args []string) error
	Book(ctx context.Context, args []string) error

	Amenities(ctx context.Context, args []string) error
	ScheduleTypes(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: rooms [search], room <id>, addroom, editroom <id>, images <id>, " +
		"deleteroom <id>, password <id> [new], timeslots <room>, addslot <room>, deleteslot <room> <slot>, " +
		"availability <room> [from] [to], book <room> <slot> <date>, amenities [add|delete <id>], " +
		"scheduletypes [search|add|delete <id>], logout, exit"
)

// runREPL starts a read–eval–print loop for the roomadmin CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a with the remaining tokens. The loop exits on
// EOF or when the user types "exit" or "quit".
//
// Everything but help, login and exit requires a session. Errors returned by
// command handlers are ignored here; handlers report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ra%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if isCommand(cmd) {
				printlnFn("Please login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "rooms", "ls":
			_ = a.Rooms(ctx, args)
		case "room":
			_ = a.Room(ctx, args)
		case "addroom":
			_ = a.AddRoom(ctx)
		case "editroom":
			_ = a.EditRoom(ctx, args)
		case "images":
			_ = a.Images(ctx, args)
		case "deleteroom":
			_ = a.DeleteRoom(ctx, args)
		case "password":
			_ = a.Password(ctx, args)
		case "timeslots":
			_ = a.TimeSlots(ctx, args)
		case "addslot":
			_ = a.AddSlot(ctx, args)
		case "deleteslot":
			_ = a.DeleteSlot(ctx, args)
		case "availability":
			_ = a.Availability(ctx, args)
		case "book":
			_ = a.Book(ctx, args)
		case "amenities":
			_ = a.Amenities(ctx, args)
		case "scheduletypes":
			_ = a.ScheduleTypes(ctx, args)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isCommand(cmd string) bool {
	switch cmd {
	case "logout", "rooms", "ls", "room", "addroom", "editroom", "images", "deleteroom", "password",
		"timeslots", "addslot", "deleteslot", "availability", "book", "amenities", "scheduletypes":
		return true
	}
	return false
}
