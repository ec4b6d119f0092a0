package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/export"
	"wellvantage/fitness-app/internal/notice"
	"wellvantage/fitness-app/internal/screen"
	"wellvantage/fitness-app/internal/store"
	"wellvantage/fitness-app/internal/validate"
)

func (a *app) availability(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	avails := store.NewAvailabilityStore(a.client, a.logger)
	defer avails.Close()

	switch args[0] {
	case "list":
		return a.listAvailability(ctx, avails, args[1:])
	case "add":
		return a.saveAvailability(ctx, avails, "", args[1:])
	case "update":
		fs, _ := availabilityFlags("update")
		positional, err := parse(fs, args[1:])
		if err != nil {
			return err
		}
		if len(positional) != 1 {
			return errUsage
		}
		return a.saveAvailability(ctx, avails, positional[0], args[1:])
	case "delete":
		if len(args) != 2 {
			return errUsage
		}
		form := screen.NewAvailabilityForm(avails, a.notices, time.Now)
		return form.Delete(ctx, args[1])
	default:
		return errUsage
	}
}

func (a *app) listAvailability(ctx context.Context, avails *store.AvailabilityStore, args []string) error {
	fs := newFlags("availability list")
	from := fs.String("from", "", "first date, YYYY-MM-DD")
	to := fs.String("to", "", "last date, YYYY-MM-DD")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	var err error
	if *from != "" || *to != "" {
		err = avails.FetchRange(ctx, *from, *to)
	} else {
		err = avails.Fetch(ctx)
	}
	if err != nil {
		return a.fail(err, screen.MsgLoadFailed)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tSESSION\tRECURRING")
	for _, av := range avails.State().Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", av.ID, av.Date, timeRange(av.StartTime, av.EndTime), av.SessionName, av.IsRecurring)
	}
	return tw.Flush()
}

type availabilityValues struct {
	date, start, end, name *string
	recurring              *bool
}

func availabilityFlags(name string) (*flag.FlagSet, availabilityValues) {
	fs := newFlags("availability " + name)
	v := availabilityValues{
		date:      fs.String("date", "", "YYYY-MM-DD (default: today)"),
		start:     fs.String("start", "", "HH:MM (default: "+screen.DefaultStartTime+")"),
		end:       fs.String("end", "", "HH:MM (default: "+screen.DefaultEndTime+")"),
		name:      fs.String("name", "", "session name"),
		recurring: fs.Bool("recurring", false, "repeat weekly"),
	}
	return fs, v
}

// saveAvailability submits the availability form: a new window when id is
// empty, otherwise the stored window with the given flags applied.
func (a *app) saveAvailability(ctx context.Context, avails *store.AvailabilityStore, id string, args []string) error {
	fs, v := availabilityFlags("save")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	set := setFlags(fs)

	form := screen.NewAvailabilityForm(avails, a.notices, time.Now)
	if id != "" {
		if err := avails.Fetch(ctx); err != nil {
			return a.fail(err, screen.MsgLoadFailed)
		}
		current, ok := avails.Find(id)
		if !ok {
			a.notices.Show(notice.Warning{Msg: screen.MsgAvailabilityAbsent})
			return store.ErrNotLoaded
		}
		form.Edit(current)
	}

	in := form.Values()
	if set["date"] {
		in.Date = *v.date
	}
	if set["start"] {
		in.StartTime = *v.start
	}
	if set["end"] {
		in.EndTime = *v.end
	}
	if set["name"] {
		in.SessionName = *v.name
	}
	if set["recurring"] {
		in.IsRecurring = *v.recurring
	}
	form.Set(in)

	saved, err := form.Submit(ctx)
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		printFieldErrors(a, form.Errors())
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, saved.ID)
	return nil
}

func printFieldErrors(a *app, errs validate.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(a.out, "%s: %s\n", f, errs[f])
	}
}

func (a *app) bookings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	avails := store.NewAvailabilityStore(a.client, a.logger)
	books := store.NewBookingStore(a.client, a.logger)
	defer avails.Close()
	defer books.Close()
	board := screen.NewBookSlot(avails, books, a.notices, time.Now())

	switch args[0] {
	case "list":
		return a.listBookings(ctx, books, args[1:])
	case "board":
		fs := newFlags("bookings board")
		date := fs.String("date", "", "YYYY-MM-DD (default: today)")
		if _, err := parse(fs, args[1:]); err != nil {
			return err
		}
		if err := board.Load(ctx); err != nil {
			return err
		}
		if *date != "" && !board.SelectDate(*date) {
			a.notices.Show(notice.Info{Msg: screen.MsgNoSlots})
			return nil
		}
		printBoard(a, board)
		return nil
	case "book":
		fs := newFlags("bookings book")
		date := fs.String("date", "", "YYYY-MM-DD (default: the window's date)")
		positional, err := parse(fs, args[1:])
		if err != nil {
			return err
		}
		if len(positional) != 1 {
			return errUsage
		}
		if err := board.Load(ctx); err != nil {
			return err
		}
		if *date == "" {
			if av, ok := avails.Find(positional[0]); ok {
				*date = av.Date
			}
		}
		board.SelectDate(*date)
		return board.Book(ctx, positional[0])
	case "toggle", "cancel":
		if len(args) != 2 {
			return errUsage
		}
		if err := board.Load(ctx); err != nil {
			return err
		}
		if args[0] == "toggle" {
			return board.Toggle(ctx, args[1])
		}
		return board.Cancel(ctx, args[1])
	default:
		return errUsage
	}
}

func (a *app) listBookings(ctx context.Context, books *store.BookingStore, args []string) error {
	fs := newFlags("bookings list")
	availabilityID := fs.String("availability", "", "only bookings of this availability window")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	var err error
	if *availabilityID != "" {
		err = books.FetchByAvailability(ctx, *availabilityID)
	} else {
		err = books.Fetch(ctx)
	}
	if err != nil {
		return a.fail(err, screen.MsgLoadFailed)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tSTATUS\tAVAILABILITY")
	for _, b := range books.State().Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.BookingDate, timeRange(b.StartTime, b.EndTime), b.Status, b.AvailabilityID)
	}
	return tw.Flush()
}

func printBoard(a *app, board *screen.BookSlot) {
	month := board.Month()
	days := board.Calendar()
	selectable := make([]string, 0, len(days))
	for d := 1; d <= 31; d++ {
		if days[d] {
			selectable = append(selectable, fmt.Sprint(d))
		}
	}
	fmt.Fprintf(a.out, "%s  (%s)\n", month.Format("January 2006"), board.OpenSessions())
	fmt.Fprintf(a.out, "Days with slots: %s\n", orNone(strings.Join(selectable, " ")))
	fmt.Fprintf(a.out, "\n%s\n", board.SelectedDate())

	if msg := board.EmptyMessage(); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSESSION\tSTATUS\tACTIONS\tID")
	for _, s := range board.Slots() {
		status, id := "available", s.Availability.ID
		if s.Booked() {
			status, id = string(s.Status()), s.Booking.ID
		}
		actions := make([]string, 0, 2)
		for _, act := range s.Actions() {
			actions = append(actions, string(act))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			timeRange(s.Availability.StartTime, s.Availability.EndTime),
			s.Availability.SessionName, status, strings.Join(actions, ","), id)
	}
	_ = tw.Flush()
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := newFlags("export")
	from := fs.String("from", "", "first date, YYYY-MM-DD")
	to := fs.String("to", "", "last date, YYYY-MM-DD")
	dir := fs.String("dir", ".", "output directory")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	avails := store.NewAvailabilityStore(a.client, a.logger)
	books := store.NewBookingStore(a.client, a.logger)
	defer avails.Close()
	defer books.Close()
	if err := screen.NewBookSlot(avails, books, a.notices, time.Now()).Load(ctx); err != nil {
		return err
	}

	path, err := export.ScheduleFile(*dir, export.Range{Start: *from, End: *to}, avails.State().Items, books.State().Items)
	if err != nil {
		return a.fail(err, "Export failed")
	}
	rows := 0
	for _, av := range avails.State().Items {
		if (*from == "" || av.Date >= *from) && (*to == "" || av.Date <= *to) {
			rows++
		}
	}
	a.notices.Show(notice.Success{Msg: fmt.Sprintf("Exported %d slots to %s", rows, path)})
	return nil
}

func timeRange(start, end string) string {
	return domain.DisplayTime(start) + " - " + domain.DisplayTime(end)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
