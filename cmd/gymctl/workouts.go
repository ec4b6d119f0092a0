package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/notice"
	"wellvantage/fitness-app/internal/store"
	"wellvantage/fitness-app/internal/validate"
)

// dayFlags collects repeated -day flags of the form
// "Chest: Bench press 3x10, Incline fly 3x12". Sets and reps are optional.
type dayFlags []domain.WorkoutDay

func (d *dayFlags) String() string {
	names := make([]string, len(*d))
	for i, day := range *d {
		names[i] = day.Name
	}
	return strings.Join(names, ", ")
}

func (d *dayFlags) Set(value string) error {
	day, err := parseDay(value)
	if err != nil {
		return err
	}
	*d = append(*d, day)
	return nil
}

func parseDay(value string) (domain.WorkoutDay, error) {
	name, rest, _ := strings.Cut(value, ":")
	day := domain.WorkoutDay{Name: strings.TrimSpace(name)}
	for _, item := range strings.Split(rest, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		ex := domain.WorkoutExercise{Name: item}
		if i := strings.LastIndex(item, " "); i > 0 {
			if sets, reps, ok := strings.Cut(item[i+1:], "x"); ok && sets != "" && reps != "" {
				ex = domain.WorkoutExercise{Name: strings.TrimSpace(item[:i]), Sets: sets, Reps: reps}
			}
		}
		day.Exercises = append(day.Exercises, ex)
	}
	if day.Name == "" && len(day.Exercises) > 0 {
		return day, fmt.Errorf("day %q has exercises but no name", value)
	}
	return day, nil
}

func (a *app) workouts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	plans := store.NewWorkoutStore(a.client, a.logger)
	defer plans.Close()

	switch args[0] {
	case "list":
		if err := plans.Fetch(ctx); err != nil {
			return a.fail(err, "Failed to load workouts")
		}
		for _, p := range plans.State().Items {
			printPlan(a, p)
		}
		return nil
	case "add", "update":
		return a.saveWorkout(ctx, plans, args[0], args[1:])
	case "delete":
		if len(args) != 2 {
			return errUsage
		}
		if err := plans.Delete(ctx, args[1]); err != nil {
			return a.fail(err, "Failed to delete workout")
		}
		a.notices.Show(notice.Success{Msg: "Workout deleted"})
		return nil
	default:
		return errUsage
	}
}

func (a *app) saveWorkout(ctx context.Context, plans *store.WorkoutStore, mode string, args []string) error {
	fs := newFlags("workouts " + mode)
	title := fs.String("title", "", "plan title")
	notes := fs.String("notes", "", "notes")
	var days dayFlags
	fs.Var(&days, "day", `a day, repeatable: "Chest: Bench press 3x10, Fly 3x12"`)
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}

	in := domain.WorkoutPlanInput{Title: *title, Days: days, Notes: *notes}
	var saved *domain.WorkoutPlan
	if mode == "add" {
		saved, err = plans.Create(ctx, in)
	} else {
		if len(positional) != 1 {
			return errUsage
		}
		if err := plans.Fetch(ctx); err != nil {
			return a.fail(err, "Failed to load workouts")
		}
		current, ok := plans.Find(positional[0])
		if !ok {
			a.notices.Show(notice.Warning{Msg: "Workout not found"})
			return store.ErrNotLoaded
		}
		set := setFlags(fs)
		merged := current.Input()
		if set["title"] {
			merged.Title = in.Title
		}
		if set["notes"] {
			merged.Notes = in.Notes
		}
		if set["day"] {
			merged.Days = in.Days
		}
		saved, err = plans.Update(ctx, positional[0], merged)
	}

	var fe validate.FieldErrors
	switch {
	case errors.As(err, &fe):
		a.notices.Show(notice.Warning{Msg: fe.Error()})
		return err
	case err != nil:
		return a.fail(err, "Failed to save workout")
	}
	a.notices.Show(notice.Success{Msg: "Workout saved"})
	printPlan(a, *saved)
	return nil
}

func printPlan(a *app, p domain.WorkoutPlan) {
	fmt.Fprintf(a.out, "%s  %s\n", p.ID, p.Title)
	for _, d := range p.Days {
		fmt.Fprintf(a.out, "  Day %d: %s\n", d.DayNumber, d.Name)
		for _, ex := range d.Exercises {
			if ex.Sets != "" {
				fmt.Fprintf(a.out, "    - %s  %s x %s\n", ex.Name, ex.Sets, ex.Reps)
			} else {
				fmt.Fprintf(a.out, "    - %s\n", ex.Name)
			}
		}
	}
	if p.Notes != "" {
		fmt.Fprintf(a.out, "  Notes: %s\n", p.Notes)
	}
}
