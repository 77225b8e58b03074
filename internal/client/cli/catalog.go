package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
)

// Amenities lists amenities; "add" and "delete <id>" manage them.
func (a *App) Amenities(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			return a.addAmenity(ctx)
		case "delete", "rm":
			id, err := a.argOrPrompt(args, 1, "Enter amenity id")
			if err != nil {
				return err
			}
			if err := a.amenityService.Delete(ctx, id); err != nil {
				return a.fail(ctx, "delete amenity", err)
			}
			fmt.Fprintln(a.out, "Amenity deleted")
			return nil
		}
	}

	list, err := a.amenityService.List(ctx)
	if err != nil {
		return a.fail(ctx, "list amenities", err)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tICON\tCATEGORY")
	for _, am := range list {
		category := ""
		if am.Category != nil {
			category = am.Category.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", am.ID, am.Name, am.Icon, category)
	}
	return tw.Flush()
}

func (a *App) addAmenity(ctx context.Context) error {
	var am models.Amenity
	var err error
	if am.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if am.Icon, err = getSimpleText(a.reader, "Icon", a.out); err != nil {
		return err
	}
	if am.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if am.CategoryID, err = getSimpleText(a.reader, "Category id", a.out); err != nil {
		return err
	}

	created, err := a.amenityService.Create(ctx, am)
	if err != nil {
		return a.fail(ctx, "add amenity", err)
	}
	fmt.Fprintf(a.out, "Amenity %s created\n", created.ID)
	return nil
}

// ScheduleTypes lists schedule types, optionally filtered by a search
// term; "add" and "delete <id>" manage them.
func (a *App) ScheduleTypes(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			return a.addScheduleType(ctx)
		case "delete", "rm":
			id, err := a.argOrPrompt(args, 1, "Enter schedule type id")
			if err != nil {
				return err
			}
			if err := a.scheduleTypeService.Delete(ctx, id); err != nil {
				return a.fail(ctx, "delete schedule type", err)
			}
			fmt.Fprintln(a.out, "Schedule type deleted")
			return nil
		}
	}

	page, err := a.scheduleTypeService.List(ctx, models.Pagination{Limit: 50}, strings.Join(args, " "))
	if err != nil {
		return a.fail(ctx, "list schedule types", err)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tIMAGE")
	for _, st := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", st.ID, st.Name, st.Image)
	}
	return tw.Flush()
}

func (a *App) addScheduleType(ctx context.Context) error {
	var st models.ScheduleType
	var err error
	if st.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if st.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Image file (optional)", a.out)
	if err != nil {
		return err
	}

	var image *models.LocalFile
	if path != "" {
		if image, err = models.LoadLocalFile(path); err != nil {
			return a.fail(ctx, "add schedule type", err)
		}
	}

	created, err := a.scheduleTypeService.Create(ctx, st, image)
	if err != nil {
		return a.fail(ctx, "add schedule type", err)
	}
	fmt.Fprintf(a.out, "Schedule type %s created\n", created.ID)
	return nil
}
