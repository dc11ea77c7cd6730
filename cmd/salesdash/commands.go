package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	salesapp "github.com/salesdash/backend/internal/application/sales"
	"github.com/salesdash/backend/internal/domain/shared"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errUsage
		}
		return err
	}
	return nil
}

func parseID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_ID", fmt.Sprintf("-%s must be a UUID, got %q", name, value))
	}
	return id, nil
}

func (a *app) staffAdd(ctx context.Context, args []string) error {
	fs := newFlagSet("staff add")
	var req salesapp.RegisterStaffRequest
	fs.StringVar(&req.Name, "name", "", "staff name")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.HiredOn, "hired", "", "hire date, YYYY-MM-DD")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	staff, err := a.staff.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Staff member registered: %s (%s)\n", staff.Name, staff.ID)
	return nil
}

func (a *app) staffList(ctx context.Context, args []string) error {
	if err := parseFlags(newFlagSet("staff list"), args); err != nil {
		return err
	}
	staff, err := a.staff.List(ctx)
	if err != nil {
		return err
	}
	if len(staff) == 0 {
		fmt.Fprintln(a.out, "No staff members registered.")
		return nil
	}

	t := newTable(a.out, "ID", "NAME", "PHONE", "HIRED")
	for _, s := range staff {
		hired := ""
		if s.HiredOn != nil {
			hired = s.HiredOn.Format("02/01/2006")
		}
		t.row(s.ID.String(), s.Name, s.Phone, hired)
	}
	return t.flush()
}

func (a *app) staffUpdate(ctx context.Context, args []string) error {
	fs := newFlagSet("staff update")
	var rawID string
	var req salesapp.UpdateStaffRequest
	fs.StringVar(&rawID, "id", "", "staff ID")
	fs.StringVar(&req.Name, "name", "", "staff name")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.HiredOn, "hired", "", "hire date, YYYY-MM-DD")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := parseID("id", rawID)
	if err != nil {
		return err
	}

	staff, err := a.staff.Update(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Staff member updated: %s (%s)\n", staff.Name, staff.ID)
	return nil
}

func (a *app) staffDelete(ctx context.Context, args []string) error {
	fs := newFlagSet("staff delete")
	rawID := fs.String("id", "", "staff ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := parseID("id", *rawID)
	if err != nil {
		return err
	}
	if err := a.staff.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Staff member deleted. Their sales records are kept.")
	return nil
}

func (a *app) recordAdd(ctx context.Context, args []string) error {
	fs := newFlagSet("record add")
	var req salesapp.AddRecordRequest
	fs.StringVar(&req.StaffID, "staff", "", "staff ID")
	fs.StringVar(&req.Month, "month", "", "month, 1-12")
	fs.StringVar(&req.Year, "year", "", "year, defaults to the current year")
	fs.StringVar(&req.Sales, "sales", "", "sales amount")
	fs.StringVar(&req.Commission, "commission", "", "commission amount")
	fs.StringVar(&req.Bonus, "bonus", "", "bonus amount")
	fs.StringVar(&req.Expenses, "expenses", "", "expenses amount")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	rec, err := a.records.Add(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sales record added for %s, %s: net profit %s\n",
		rec.StaffName, rec.Period, a.format.Money(rec.NetProfit))
	return nil
}

func (a *app) recordList(ctx context.Context, args []string) error {
	fs := newFlagSet("record list")
	var filter salesapp.RecordListFilter
	fs.StringVar(&filter.Year, "year", "", "year, empty for all")
	fs.StringVar(&filter.StaffID, "staff", "", "staff ID, empty for all")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	records, err := a.records.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No sales records found.")
		return nil
	}

	t := newTable(a.out, "ID", "STAFF", "PERIOD", "SALES", "COMMISSION", "BONUS", "EXPENSES", "NET PROFIT")
	for _, r := range records {
		t.row(r.ID.String(), r.StaffName, r.Period,
			a.format.Money(r.Sales), a.format.Money(r.Commission), a.format.Money(r.Bonus),
			a.format.Money(r.Expenses), a.format.Money(r.NetProfit))
	}
	return t.flush()
}

func (a *app) recordDelete(ctx context.Context, args []string) error {
	fs := newFlagSet("record delete")
	rawID := fs.String("id", "", "record ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := parseID("id", *rawID)
	if err != nil {
		return err
	}
	if err := a.records.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sales record deleted.")
	return nil
}

func (a *app) importCSV(ctx context.Context, args []string) error {
	return a.importFile(ctx, "import csv", args, a.imports.ImportCSV)
}

func (a *app) importLegacy(ctx context.Context, args []string) error {
	return a.importFile(ctx, "import legacy", args, a.imports.ImportLegacy)
}

func (a *app) importFile(
	ctx context.Context,
	name string,
	args []string,
	load func(context.Context, io.Reader) (*salesapp.ImportResult, error),
) error {
	fs := newFlagSet(name)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := load(ctx, f)
	if err != nil {
		return err
	}
	a.printImportResult(result)
	return nil
}

func (a *app) printImportResult(r *salesapp.ImportResult) {
	fmt.Fprintf(a.out, "Rows: %d  imported: %d  skipped: %d  with errors: %d\n",
		r.TotalRows, r.ImportedRows, r.SkippedRows, r.ErrorRows)
	if r.StaffImported > 0 {
		fmt.Fprintf(a.out, "Staff members imported: %d\n", r.StaffImported)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(a.out, "  %s\n", e.Error())
	}
	if r.IsTruncated {
		fmt.Fprintf(a.out, "  ... and %d more\n", r.TotalErrors-len(r.Errors))
	}
}
