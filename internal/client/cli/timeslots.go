package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
)

func printSlots(w io.Writer, slots []models.TimeSlot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tTO\tPRICE\tOVERNIGHT\tSTATUS")
	for _, s := range slots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n", s.ID, s.StartTime, s.EndTime, formatNumber(s.Price), s.IsOvernight, s.Status)
	}
	return tw.Flush()
}

func (a *App) TimeSlots(ctx context.Context, args []string) error {
	roomID, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}
	slots, err := a.timeSlotService.List(ctx, roomID)
	if err != nil {
		return a.fail(ctx, "list time slots", err)
	}
	return printSlots(a.out, slots)
}

func (a *App) AddSlot(ctx context.Context, args []string) error {
	roomID, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}

	var slot models.TimeSlot
	if slot.StartTime, err = getSimpleText(a.reader, "Start time (HH:MM)", a.out); err != nil {
		return err
	}
	if slot.EndTime, err = getSimpleText(a.reader, "End time (HH:MM)", a.out); err != nil {
		return err
	}
	if slot.Price, err = a.promptFloat("Price", 0); err != nil {
		return a.fail(ctx, "add time slot", err)
	}
	overnight, err := getSimpleText(a.reader, "Overnight (y/n)", a.out)
	if err != nil {
		return err
	}
	slot.IsOvernight = parseYes(overnight)

	created, err := a.timeSlotService.Create(ctx, roomID, slot)
	if err != nil {
		return a.fail(ctx, "add time slot", err)
	}
	fmt.Fprintf(a.out, "Time slot %s created\n", created.ID)
	return nil
}

func (a *App) DeleteSlot(ctx context.Context, args []string) error {
	roomID, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}
	slotID, err := a.argOrPrompt(args, 1, "Enter time slot id")
	if err != nil {
		return err
	}
	if err := a.timeSlotService.Delete(ctx, roomID, slotID); err != nil {
		return a.fail(ctx, "delete time slot", err)
	}
	fmt.Fprintln(a.out, "Time slot deleted")
	return nil
}

// Availability lists the slots of a room that can be booked between two
// optional dates.
func (a *App) Availability(ctx context.Context, args []string) error {
	roomID, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}
	var from, to string
	if len(args) > 1 {
		from = args[1]
	}
	if len(args) > 2 {
		to = args[2]
	}

	slots, err := a.timeSlotService.Availability(ctx, roomID, from, to)
	if err != nil {
		return a.fail(ctx, "availability", err)
	}
	if len(slots) == 0 {
		fmt.Fprintln(a.out, "No available slots")
		return nil
	}
	return printSlots(a.out, slots)
}

func (a *App) Book(ctx context.Context, args []string) error {
	roomID, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}
	slotID, err := a.argOrPrompt(args, 1, "Enter time slot id")
	if err != nil {
		return err
	}
	date, err := a.argOrPrompt(args, 2, "Enter date (YYYY-MM-DD)")
	if err != nil {
		return err
	}

	booking, err := a.timeSlotService.Book(ctx, roomID, slotID, date)
	if err != nil {
		return a.fail(ctx, "book", err)
	}
	fmt.Fprintf(a.out, "Booking %s created for %s\n", booking.ID, date)
	return nil
}
