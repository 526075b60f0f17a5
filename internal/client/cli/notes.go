package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/notevault/internal/rpcapi"
)

func (a *App) add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "Tags, comma separated (optional)", a.out)
	if err != nil {
		return err
	}

	n, err := a.api.CreateNote(ctx, rpcapi.NoteRequest{Title: title, Content: content, Tags: splitTags(tags)})
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	fmt.Fprintf(a.out, "Note %d created\n", n.ID)
	return nil
}

func (a *App) get(ctx context.Context, id int64) error {
	n, err := a.api.GetNote(ctx, id)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	printNote(a.out, n)
	return nil
}

// edit prompts for each field. Empty input keeps the current value.
func (a *App) edit(ctx context.Context, id int64) error {
	n, err := a.api.GetNote(ctx, id)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", n.Title), a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, fmt.Sprintf("Tags [%s], '-' clears", strings.Join(n.Tags, ", ")), a.out)
	if err != nil {
		return err
	}

	req := rpcapi.NoteRequest{ID: id, Title: n.Title, Content: n.Content, Tags: n.Tags}
	if title != "" {
		req.Title = title
	}
	if content != "" {
		req.Content = content
	}
	switch tags {
	case "":
	case "-":
		req.Tags = []string{}
	default:
		req.Tags = splitTags(tags)
	}

	if _, err := a.api.UpdateNote(ctx, req); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	fmt.Fprintf(a.out, "Note %d updated\n", id)
	return nil
}

func (a *App) delete(ctx context.Context, id int64) error {
	if err := a.api.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	fmt.Fprintf(a.out, "Note %d deleted\n", id)
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	page := fs.Int("page", 1, "page number, from 1")
	size := fs.Int("size", 20, "notes per page")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: list: %w", ErrUsage, err)
	}

	if *page < 1 {
		return fmt.Errorf("%w: list: page starts at 1", ErrUsage)
	}

	// The server counts pages from zero.
	req := rpcapi.ListNotesRequest{Page: *page - 1, Size: *size, Query: strings.Join(fs.Args(), " ")}
	p, err := a.api.ListNotes(ctx, req)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tUPDATED")
	for _, n := range p.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", n.ID, n.Title, strings.Join(n.Tags, ","), n.UpdatedAt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "page %d of %d, %d notes\n", p.Page+1, p.TotalPages, p.TotalItems)
	return nil
}

func printNote(w io.Writer, n rpcapi.Note) {
	fmt.Fprintf(w, "ID:      %d\n", n.ID)
	fmt.Fprintf(w, "Title:   %s\n", n.Title)
	fmt.Fprintf(w, "Tags:    %s\n", strings.Join(n.Tags, ", "))
	fmt.Fprintf(w, "Created: %s\n", n.CreatedAt)
	fmt.Fprintf(w, "Updated: %s\n", n.UpdatedAt)
	fmt.Fprintln(w)
	fmt.Fprintln(w, n.Content)
}
