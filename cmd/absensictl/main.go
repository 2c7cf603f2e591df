package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/repository"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/config"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/sheets"
)

// errMismatch makes recap-compare exit non-zero without printing a usage
// banner.
type errMismatch int

func (e errMismatch) Error() string { return fmt.Sprintf("%d recap rows differ", int(e)) }

type services struct {
	calendar *service.CalendarService
	recaps   *service.RecapService
}

func connect(cfg *config.Config, logr *zap.Logger) (*services, error) {
	client, err := sheets.New(sheets.Config{
		Endpoint:     cfg.Store.Endpoint,
		ReadTimeout:  cfg.Store.ReadTimeout,
		WriteTimeout: cfg.Store.WriteTimeout,
		Logger:       logr,
	})
	if err != nil {
		return nil, err
	}
	attendance := repository.NewAttendanceRepository(client)
	calendar := repository.NewCalendarRepository(client)
	schedules := repository.NewScheduleRepository(client)
	reader := service.NewStoreReader(
		repository.NewStudentRepository(client),
		attendance,
		calendar,
		schedules,
		repository.NewSchoolRepository(client),
		nil,
	)
	validate := service.NewValidator()
	return &services{
		calendar: service.NewCalendarService(reader, calendar, schedules, validate, logr),
		recaps:   service.NewRecapService(reader, repository.NewRecapRepository(client), nil, logr),
	}, nil
}

func main() {
	var (
		class string
		month int
		year  int
	)
	now := time.Now()

	root := &cobra.Command{
		Use:           "absensictl",
		Short:         "Operator tools for the attendance store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&class, "class", models.AllClasses, "Class label, Semua for every class")
	root.PersistentFlags().IntVar(&month, "month", int(now.Month()), "Month 1-12")
	root.PersistentFlags().IntVar(&year, "year", now.Year(), "Year")

	setup := func() (*services, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return connect(cfg, zap.NewNop())
	}

	classify := &cobra.Command{
		Use:   "classify",
		Short: "Print the classification of every day of a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := setup()
			if err != nil {
				return err
			}
			cal, err := svc.calendar.Month(cmd.Context(), service.Period{Class: class, Month: time.Month(month), Year: year})
			if err != nil {
				return err
			}
			return printCalendar(cmd.OutOrStdout(), cal)
		},
	}

	compare := &cobra.Command{
		Use:   "recap-compare",
		Short: "Compare the store's monthly recap with a recompute from history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := setup()
			if err != nil {
				return err
			}
			mismatches, err := svc.recaps.Compare(cmd.Context(), class, time.Month(month), year)
			if err != nil {
				return err
			}
			return printMismatches(cmd.OutOrStdout(), mismatches)
		},
	}

	root.AddCommand(classify, compare)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printCalendar(w io.Writer, cal *service.MonthCalendar) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s %d  kelas %s  (%s)\n", models.MonthName(cal.Month), cal.Year, cal.Class, cal.TeacherStatus)
	for _, day := range cal.Days {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", day.Date, day.DayName, day.Kind, day.Description)
	}
	fmt.Fprintf(tw, "effective teaching days: %d\n", cal.EffectiveDays)
	return tw.Flush()
}

func printMismatches(w io.Writer, mismatches []service.RecapMismatch) error {
	if len(mismatches) == 0 {
		_, err := fmt.Fprintln(w, "store and local recaps agree")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAMA\tKELAS\tSTORE H/I/S/A\tLOCAL H/I/S/A")
	for _, m := range mismatches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, m.Class, counts(m.Store), counts(m.Local))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return errMismatch(len(mismatches))
}

func counts(row *models.RecapRow) string {
	if row == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d/%d/%d", row.Hadir.Int(), row.Izin.Int(), row.Sakit.Int(), row.Alpa.Int())
}
