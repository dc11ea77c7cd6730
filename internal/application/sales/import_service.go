package sales

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
	csvimport "github.com/salesdash/backend/internal/infrastructure/import"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// legacyNamespace seeds the deterministic IDs given to imported legacy
// entities, so importing the same dump twice yields the same rows.
var legacyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("salesdash:legacy"))

// LegacyStaffID returns the ID assigned to a legacy staff identifier
func LegacyStaffID(legacyID string) uuid.UUID {
	return uuid.NewSHA1(legacyNamespace, []byte("staff:"+legacyID))
}

// LegacyRecordID returns the ID assigned to a legacy record identifier
func LegacyRecordID(legacyID string) uuid.UUID {
	return uuid.NewSHA1(legacyNamespace, []byte("record:"+legacyID))
}

// ImportResult summarizes a bulk import
type ImportResult struct {
	TotalRows     int                  `json:"total_rows"`
	ImportedRows  int                  `json:"imported_rows"`
	SkippedRows   int                  `json:"skipped_rows"`
	ErrorRows     int                  `json:"error_rows"`
	StaffImported int                  `json:"staff_imported"`
	Errors        []csvimport.RowError `json:"errors,omitempty"`
	TotalErrors   int                  `json:"total_errors"`
	IsTruncated   bool                 `json:"is_truncated"`
}

func (r *ImportResult) setErrors(ec *csvimport.ErrorCollection) {
	r.Errors = ec.Errors()
	r.TotalErrors = ec.TotalCount()
	r.IsTruncated = ec.IsTruncated()
}

// ImportService loads sales data in bulk
type ImportService struct {
	staffRepo  sales.StaffRepository
	recordRepo sales.RecordRepository
	records    *RecordService
	logger     *zap.Logger
	maxErrors  int
}

// NewImportService creates a new ImportService. Rows go through records so
// they are validated like form input.
func NewImportService(
	staffRepo sales.StaffRepository,
	recordRepo sales.RecordRepository,
	records *RecordService,
	logger *zap.Logger,
) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		staffRepo:  staffRepo,
		recordRepo: recordRepo,
		records:    records,
		logger:     logger,
		maxErrors:  100,
	}
}

// ImportCSV stores every valid row of a sales CSV. Staff are matched by
// exact name. Unknown staff, malformed periods and duplicates are reported
// per row; valid rows are stored regardless.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	file, err := csvimport.ReadSalesRows(r, s.maxErrors)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CSV", err.Error())
	}

	errs := file.Errors
	result := &ImportResult{
		TotalRows: len(file.Rows) + file.Rejected,
		ErrorRows: file.Rejected,
	}
	staffByName := make(map[string]*sales.StaffMember)
	inFile := make(map[string]bool)

	for _, row := range file.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		staff, ok := staffByName[row.Staff]
		if !ok {
			staff, err = s.staffRepo.FindByName(ctx, row.Staff)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			staffByName[row.Staff] = staff
		}
		if staff == nil {
			errs.Add(csvimport.NewRowError(row.Line, csvimport.ColumnStaff,
				csvimport.ErrCodeImportReferenceNotFound, "unknown staff member '"+row.Staff+"'"))
			s.skipRow(result, row.Line, "unknown staff")
			continue
		}

		var key string
		if period, err := sales.NewPeriod(row.Month, s.records.yearOrCurrent(row.Year)); err == nil {
			key = staff.ID.String() + "/" + period.Key()
			if inFile[key] {
				errs.Add(csvimport.NewRowError(row.Line, csvimport.ColumnMonth,
					csvimport.ErrCodeImportDuplicateInFile, "period already present earlier in the file"))
				s.skipRow(result, row.Line, csvimport.ErrCodeImportDuplicateInFile)
				continue
			}
		}

		_, err := s.records.store(ctx, staff, AddRecordRequest{
			StaffID:    staff.ID.String(),
			Month:      row.Month,
			Year:       row.Year,
			Sales:      row.Sales,
			Commission: row.Commission,
			Bonus:      row.Bonus,
			Expenses:   row.Expenses,
		})
		if err != nil {
			if !s.rowError(errs, row.Line, err) {
				return nil, err
			}
			s.skipRow(result, row.Line, shared.ErrorCode(err))
			continue
		}
		if key != "" {
			inFile[key] = true
		}
		result.ImportedRows++
	}

	result.setErrors(errs)
	s.logger.Info("csv import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("errors", result.TotalErrors))
	return result, nil
}

// rowError records a domain failure against a line. It returns false for
// errors that should abort the import.
func (s *ImportService) rowError(errs *csvimport.ErrorCollection, line int, err error) bool {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return false
	}
	switch {
	case errors.Is(err, sales.ErrDuplicatePeriod):
		errs.Add(csvimport.NewRowError(line, csvimport.ColumnMonth, csvimport.ErrCodeImportDuplicateInDB, de.Message))
	case errors.Is(err, sales.ErrInvalidMonth):
		errs.Add(csvimport.NewRowError(line, csvimport.ColumnMonth, csvimport.ErrCodeImportInvalidFormat, de.Message))
	case errors.Is(err, sales.ErrInvalidYear):
		errs.Add(csvimport.NewRowError(line, csvimport.ColumnYear, csvimport.ErrCodeImportInvalidFormat, de.Message))
	case errors.Is(err, sales.ErrSalesRequired):
		errs.AddRequiredError(line, csvimport.ColumnSales)
	default:
		errs.Add(csvimport.NewRowError(line, "", de.Code, de.Message))
	}
	return true
}

func (s *ImportService) skipRow(result *ImportResult, line int, reason string) {
	result.ErrorRows++
	s.logger.Warn("import row skipped", zap.Int("row", line), zap.String("reason", reason))
}

// legacyDump is the browser storage export of the original dashboard.
// Older dumps call staff "setoristas", newer ones "vendedores".
type legacyDump struct {
	Setoristas  []legacyStaff  `json:"setoristas"`
	Vendedores  []legacyStaff  `json:"vendedores"`
	DadosVendas []legacyRecord `json:"dadosVendas"`
}

type legacyStaff struct {
	ID              legacyString `json:"id"`
	Nome            string       `json:"nome"`
	Telefone        string       `json:"telefone"`
	DataContratacao string       `json:"dataContratacao"`
}

type legacyRecord struct {
	ID            legacyString `json:"id"`
	SetoristaID   legacyString `json:"setoristaId"`
	VendedorID    legacyString `json:"vendedorId"`
	SetoristaName string       `json:"setoristaName"`
	VendedorNome  string       `json:"vendedorNome"`
	Mes           legacyString `json:"mes"`
	Ano           legacyString `json:"ano"`
	Vendas        legacyAmount `json:"vendas"`
	Comissao      legacyAmount `json:"comissao"`
	Bonus         legacyAmount `json:"bonus"`
	Despesas      legacyAmount `json:"despesas"`
	// LucroLiquido is read but ignored; net profit is always recomputed.
	LucroLiquido legacyAmount `json:"lucroLiquido"`
}

func (r legacyRecord) staffID() string {
	if r.VendedorID != "" {
		return string(r.VendedorID)
	}
	return string(r.SetoristaID)
}

func (r legacyRecord) staffName() string {
	if r.VendedorNome != "" {
		return r.VendedorNome
	}
	return r.SetoristaName
}

// legacyString accepts JSON strings and numbers.
type legacyString string

func (s *legacyString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = legacyString(v)
		return nil
	}
	*s = legacyString(b)
	return nil
}

// legacyAmount accepts numbers, numeric strings and null. Anything that does
// not parse is zero.
type legacyAmount decimal.Decimal

func (a *legacyAmount) UnmarshalJSON(b []byte) error {
	var raw legacyString
	if err := raw.UnmarshalJSON(b); err != nil {
		*a = legacyAmount(decimal.Zero)
		return nil
	}
	*a = legacyAmount(sales.ParseAmount(string(raw)))
	return nil
}

func (a legacyAmount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

// ImportLegacy loads a JSON dump of the original browser dashboard. Legacy
// IDs become deterministic UUIDs so a repeated import skips what is already
// stored. Net profit is recomputed from the amounts.
func (s *ImportService) ImportLegacy(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var dump legacyDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, shared.NewDomainError("INVALID_LEGACY_DUMP", fmt.Sprintf("Legacy dump is not valid JSON: %v", err))
	}

	errs := csvimport.NewErrorCollection(s.maxErrors)
	result := &ImportResult{TotalRows: len(dump.DadosVendas)}

	names := make(map[string]string)
	for _, ls := range append(dump.Setoristas, dump.Vendedores...) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ls.ID == "" {
			continue
		}
		id := LegacyStaffID(string(ls.ID))
		existing, err := s.staffRepo.FindByID(ctx, id)
		if err == nil {
			names[string(ls.ID)] = existing.Name
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		staff, err := sales.NewStaffMemberWithID(id, ls.Nome, ls.Telefone, legacyDate(ls.DataContratacao))
		if err != nil {
			s.logger.Warn("legacy staff skipped", zap.String("legacy_id", string(ls.ID)), zap.Error(err))
			continue
		}
		if err := s.staffRepo.Save(ctx, staff); err != nil {
			return nil, err
		}
		names[string(ls.ID)] = staff.Name
		result.StaffImported++
	}

	for i, lr := range dump.DadosVendas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := i + 1

		legacyStaffID := lr.staffID()
		if legacyStaffID == "" {
			errs.AddRequiredError(line, "vendedorId")
			s.skipRow(result, line, "missing staff id")
			continue
		}
		period, err := sales.NewPeriod(string(lr.Mes), string(lr.Ano))
		if err != nil {
			s.rowError(errs, line, err)
			s.skipRow(result, line, shared.ErrorCode(err))
			continue
		}

		id := LegacyRecordID(string(lr.ID))
		if lr.ID == "" {
			id = uuid.New()
		} else if _, err := s.recordRepo.FindByID(ctx, id); err == nil {
			result.SkippedRows++
			continue
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}

		staffID := LegacyStaffID(legacyStaffID)
		exists, err := s.recordRepo.ExistsForPeriod(ctx, staffID, period)
		if err != nil {
			return nil, err
		}
		if exists {
			s.rowError(errs, line, sales.ErrDuplicatePeriod)
			s.skipRow(result, line, sales.ErrDuplicatePeriod.Code)
			continue
		}

		name := lr.staffName()
		if name == "" {
			name = names[legacyStaffID]
		}
		record := sales.NewSalesRecordWithID(id, staffID, name, period, sales.Amounts{
			Sales:      lr.Vendas.Decimal(),
			Commission: lr.Comissao.Decimal(),
			Bonus:      lr.Bonus.Decimal(),
			Expenses:   lr.Despesas.Decimal(),
		})
		if err := s.recordRepo.Save(ctx, record); err != nil {
			if errors.Is(err, sales.ErrDuplicatePeriod) {
				s.rowError(errs, line, err)
				s.skipRow(result, line, sales.ErrDuplicatePeriod.Code)
				continue
			}
			return nil, err
		}
		if stored := lr.LucroLiquido.Decimal(); !stored.Equal(record.NetProfit) {
			s.logger.Debug("legacy net profit corrected",
				zap.String("legacy_id", string(lr.ID)),
				zap.String("stored", stored.String()),
				zap.String("computed", record.NetProfit.String()))
		}
		result.ImportedRows++
	}

	result.setErrors(errs)
	s.logger.Info("legacy import finished",
		zap.Int("staff", result.StaffImported),
		zap.Int("imported", result.ImportedRows),
		zap.Int("skipped", result.SkippedRows),
		zap.Int("errors", result.TotalErrors))
	return result, nil
}

func legacyDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if len(raw) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, raw[:len(DateLayout)]); err == nil {
			return &t
		}
	}
	return nil
}
