package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
)

var errCancelled = errors.New("cancelled")

// argOrPrompt returns args[i] when present and asks for it otherwise.
func (a *App) argOrPrompt(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errCancelled
	}
	return s, nil
}

func (a *App) Rooms(ctx context.Context, args []string) error {
	params := models.RoomListParams{
		Pagination: models.Pagination{Limit: 50},
		Search:     strings.Join(args, " "),
	}
	page, err := a.roomService.List(ctx, params)
	if err != nil {
		return a.fail(ctx, "list rooms", err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCAPACITY\tHOURLY\tOVERNIGHT\tACTIVE")
	for _, r := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%t\n",
			r.ID, r.Name, r.RoomType, r.Capacity, formatNumber(r.HourlyRate), formatNumber(r.OvernightRate), r.IsActive)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d of %d room(s)\n", len(page.Content), page.TotalElements)
	return nil
}

func (a *App) Room(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}
	room, err := a.roomService.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, "get room", err)
	}
	a.printRoom(room)
	return nil
}

func (a *App) printRoom(r *models.Room) {
	fmt.Fprintf(a.out, "%s (%s)\n", r.Name, r.ID)
	if r.Description != "" {
		fmt.Fprintln(a.out, r.Description)
	}
	fmt.Fprintf(a.out, "Type: %s  Capacity: %d  Beds: %d  Area: %s\n", r.RoomType, r.Capacity, r.Bed, formatNumber(r.Area))
	fmt.Fprintf(a.out, "Hourly: %s  Overnight: %s  Active: %t\n", formatNumber(r.HourlyRate), formatNumber(r.OvernightRate), r.IsActive)
	if len(r.Amenities) > 0 {
		names := make([]string, 0, len(r.Amenities))
		for _, am := range r.Amenities {
			names = append(names, am.Name)
		}
		fmt.Fprintf(a.out, "Amenities: %s\n", strings.Join(names, ", "))
	}
	for i, img := range r.Images {
		fmt.Fprintf(a.out, "  [%d] %s\n", i+1, img.URL)
	}
}

// readDraft prompts for every room field, offering the values of base as
// defaults.
func (a *App) readDraft(base models.RoomDraft) (models.RoomDraft, error) {
	d := base
	var err error

	if d.Name, err = GetWithDefault(a.reader, "Name", base.Name, a.out); err != nil {
		return d, err
	}
	if d.Name == "" {
		return d, errors.New("name is required")
	}
	if d.Description, err = GetWithDefault(a.reader, "Description", base.Description, a.out); err != nil {
		return d, err
	}
	if d.Capacity, err = a.promptInt("Capacity", base.Capacity); err != nil {
		return d, err
	}
	if d.NumberOfBeds, err = a.promptInt("Beds", base.NumberOfBeds); err != nil {
		return d, err
	}
	if d.Area, err = a.promptFloat("Area", base.Area); err != nil {
		return d, err
	}
	if d.HourlyRate, err = a.promptFloat("Hourly rate", base.HourlyRate); err != nil {
		return d, err
	}
	if d.OvernightRate, err = a.promptFloat("Overnight rate", base.OvernightRate); err != nil {
		return d, err
	}

	rt, err := GetWithDefault(a.reader, "Room type (NORMAL, STANDARD, VIP, PREMIUM)", string(base.RoomType), a.out)
	if err != nil {
		return d, err
	}
	d.RoomType = models.RoomType(strings.ToUpper(rt))

	active := "n"
	if base.IsActive {
		active = "y"
	}
	s, err := GetWithDefault(a.reader, "Active (y/n)", active, a.out)
	if err != nil {
		return d, err
	}
	d.IsActive = parseYes(s)

	ids, err := GetWithDefault(a.reader, "Amenity ids, comma separated", strings.Join(base.AmenityIDs, ","), a.out)
	if err != nil {
		return d, err
	}
	d.AmenityIDs = SplitList(ids)
	return d, nil
}

func (a *App) promptInt(prompt string, current int) (int, error) {
	def := ""
	if current != 0 {
		def = fmt.Sprint(current)
	}
	s, err := GetWithDefault(a.reader, prompt, def, a.out)
	if err != nil {
		return 0, err
	}
	return parseInt(s)
}

func (a *App) promptFloat(prompt string, current float64) (float64, error) {
	s, err := GetWithDefault(a.reader, prompt, formatNumber(current), a.out)
	if err != nil {
		return 0, err
	}
	return parseFloat(s)
}

func (a *App) AddRoom(ctx context.Context) error {
	draft, err := a.readDraft(models.RoomDraft{RoomType: models.RoomTypeStandard, IsActive: true})
	if err != nil {
		return a.fail(ctx, "add room", err)
	}

	paths, err := GetLines(a.reader, "Image files, one path per line", a.out)
	if err != nil {
		return err
	}
	images, err := loadImages(paths)
	if err != nil {
		return a.fail(ctx, "add room", err)
	}

	room, err := a.roomService.Create(ctx, draft, images)
	if err != nil {
		return a.fail(ctx, "add room", err)
	}
	fmt.Fprintf(a.out, "Room %s created with %d image(s)\n", room.ID, len(room.Images))
	return nil
}

func loadImages(paths []string) ([]models.ImageRef, error) {
	images := make([]models.ImageRef, 0, len(paths))
	for _, p := range paths {
		f, err := models.LoadLocalFile(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		images = append(images, models.NewLocalImage(f))
	}
	return images, nil
}

// draftFromRoom is the write model matching r.
func draftFromRoom(r *models.Room) models.RoomDraft {
	return models.RoomDraft{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Capacity:      r.Capacity,
		NumberOfBeds:  r.Bed,
		Area:          r.Area,
		IsActive:      r.IsActive,
		AmenityIDs:    r.AmenityIDs(),
		HourlyRate:    r.HourlyRate,
		OvernightRate: r.OvernightRate,
		RoomType:      r.RoomType,
	}
}

// EditRoom edits the fields, amenities and images of a room and saves them
// in one go.
func (a *App) EditRoom(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}
	original, err := a.roomService.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, "get room", err)
	}

	draft, err := a.readDraft(draftFromRoom(original))
	if err != nil {
		return a.fail(ctx, "edit room", err)
	}
	current, err := a.editImages(models.PersistedImages(original.Images))
	if err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Fprintln(a.out, "Nothing saved")
			return nil
		}
		return err
	}

	if _, err := a.roomService.Update(ctx, original, draft, current); err != nil {
		return a.fail(ctx, "update room", err)
	}
	return nil
}

// Images edits only the image set of a room.
func (a *App) Images(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}
	original, err := a.roomService.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, "get room", err)
	}

	current, err := a.editImages(models.PersistedImages(original.Images))
	if err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Fprintln(a.out, "Nothing saved")
			return nil
		}
		return err
	}

	a.imageService.SyncImages(ctx, original.ID, current, original.Images)
	return nil
}

// editImages runs a small sub-prompt over the image set. Added files are
// staged locally; nothing reaches the backend until the caller saves.
func (a *App) editImages(images []models.ImageRef) ([]models.ImageRef, error) {
	current := append([]models.ImageRef(nil), images...)
	for {
		for i, img := range current {
			label := img.URL
			if img.IsLocal {
				label = img.File.Name + " (new)"
			}
			fmt.Fprintf(a.out, "  [%d] %s\n", i+1, label)
		}
		line, err := getSimpleText(a.reader, "Images: add <path>, remove <n>, save, cancel", a.out)
		if err != nil {
			return nil, err
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "add":
			f, err := models.LoadLocalFile(arg)
			if err != nil {
				fmt.Fprintf(a.out, "Error: %s\n", err)
				continue
			}
			current = append(current, models.NewLocalImage(f))
		case "remove", "rm":
			n, err := parseInt(arg)
			if err != nil || n < 1 || n > len(current) {
				fmt.Fprintf(a.out, "No image %q\n", arg)
				continue
			}
			current = append(current[:n-1], current[n:]...)
		case "save", "done", "":
			return current, nil
		case "cancel":
			return nil, errCancelled
		default:
			fmt.Fprintf(a.out, "Unknown image command: %s\n", cmd)
		}
	}
}

func (a *App) DeleteRoom(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter room id to delete")
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete room %s? (y/n)", id), a.out)
	if err != nil {
		return err
	}
	if !parseYes(answer) {
		return nil
	}
	if err := a.roomService.Delete(ctx, id); err != nil {
		return a.fail(ctx, "delete room", err)
	}
	fmt.Fprintln(a.out, "Room deleted")
	return nil
}

// Password shows the door password of a room, or sets it when a new one is
// given.
func (a *App) Password(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter room id")
	if err != nil {
		return err
	}
	if len(args) > 1 {
		pw, err := a.roomService.SetPassword(ctx, id, args[1])
		if err != nil {
			return a.fail(ctx, "set password", err)
		}
		fmt.Fprintf(a.out, "Password set to %s\n", pw)
		return nil
	}

	pw, ok := a.roomService.CurrentPassword(ctx, id)
	if !ok {
		fmt.Fprintln(a.out, "No password set")
		return nil
	}
	fmt.Fprintf(a.out, "Current password: %s\n", pw)
	return nil
}
