package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dsmirnovs/notekeeper/internal/client/api"
)

func (a *App) AddNote(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	category, err := GetSimpleText(a.reader, "Enter category (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	var categoryPtr *string
	if category != "" {
		categoryPtr = &category
	}

	note, err := a.api.CreateNote(ctx, title, content, categoryPtr)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Created note %s\n", note.ID)
	return nil
}

// List fetches a page of notes. Extra arguments are joined into a search
// query, e.g. "list grocery run".
func (a *App) List(ctx context.Context, args []string) error {
	opts := api.ListOptions{Search: strings.Join(args, " ")}

	page, err := a.api.ListNotes(ctx, opts)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	for _, note := range page.Items {
		category := "-"
		if note.Category != nil {
			category = *note.Category
		}
		fmt.Fprintf(a.out, "%s  [%s]  %s (updated %s)\n",
			note.ID, category, note.Title, note.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(a.out, "Page %d of %d (%d notes total)\n", page.Page, page.TotalPages, page.Total)

	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return nil
	}

	note, err := a.api.GetNote(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Title: %s\n", note.Title)
	if note.Category != nil {
		fmt.Fprintf(a.out, "Category: %s\n", *note.Category)
	}
	fmt.Fprintf(a.out, "Updated: %s\n\n%s\n", note.UpdatedAt.Format("2006-01-02 15:04"), note.Content)

	return nil
}

// Edit prompts for new field values. Empty input keeps the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}

	title, err := GetSimpleText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "New content (empty to keep)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	category, err := GetSimpleText(a.reader, "New category (empty to keep)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	patch := api.NotePatch{}
	if title != "" {
		patch.Title = &title
	}
	if content != "" {
		patch.Content = &content
	}
	if category != "" {
		patch.Category = &category
	}

	note, err := a.api.UpdateNote(ctx, args[0], patch)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Updated note %s\n", note.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}

	if err := a.api.DeleteNote(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Note deleted.")
	return nil
}
