package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/mis_backend/config"
	"bitbucket.org/mmdatafocus/mis_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MisRow is one line item of a shipment/order with its invoice and
// payment metadata. Rows live in one physical table per company; the
// struct is shared and the table is chosen through Company.Table.
type MisRow struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Sr              int             `gorm:"index;not null;default:0" json:"sr"`
	Customer        string          `gorm:"size:255" json:"customer"`
	FinancialYear   string          `gorm:"size:50" json:"financial_year"`
	PoNo            string          `gorm:"size:100" json:"po_no"`
	PoDate          *DateString     `json:"po_date"`
	OcNo            string          `gorm:"size:100" json:"oc_no"`
	OcDate          *DateString     `json:"oc_date"`
	TransportMode   TransportMode   `gorm:"type:enum('SEA','AIR');default:'SEA'" json:"transport_mode"`
	Scadenza        *DateString     `json:"scadenza"`
	Description     string          `gorm:"size:500" json:"description"`
	Rate            decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"rate"`
	OrderedQty      decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"ordered_qty"`
	InvoiceNo       string          `gorm:"size:100" json:"invoice_no"`
	InvoiceQty      decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"invoice_qty"`
	InvoiceDate     *DateString     `json:"invoice_date"`
	BlDate          *DateString     `json:"bl_date"`
	PaymentTermDays *int            `json:"payment_term_days"`
	DueDate         *DateString     `json:"due_date"`
	PaymentStatus   YesNo           `gorm:"type:enum('YES','NO');default:'NO'" json:"payment_status"`
	DocInvoice      YesNo           `gorm:"type:enum('YES','NO');default:'NO'" json:"doc_invoice"`
	DocPackingList  YesNo           `gorm:"type:enum('YES','NO');default:'NO'" json:"doc_packing_list"`
	DocCoa          YesNo           `gorm:"type:enum('YES','NO');default:'NO'" json:"doc_coa"`
	DocHealthCert   YesNo           `gorm:"type:enum('YES','NO');default:'NO'" json:"doc_health_cert"`
	DocOriginCert   YesNo           `gorm:"type:enum('YES','NO');default:'NO'" json:"doc_origin_cert"`
	DocInsurance    YesNo           `gorm:"type:enum('YES','NO');default:'NO'" json:"doc_insurance"`
	Remark          string          `gorm:"size:1000" json:"remark"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewMisHeader carries the fields the entry form shares across all line
// items of one submission.
//
// Dates and numbers come in as free text: malformed input maps to
// absent/zero and never blocks saving the rest of the record.
type NewMisHeader struct {
	Sr            int           `json:"sr" binding:"required"`
	Customer      string        `json:"customer" binding:"required"`
	FinancialYear string        `json:"financial_year"`
	PoNo          string        `json:"po_no"`
	PoDate        string        `json:"po_date"`
	OcNo          string        `json:"oc_no"`
	OcDate        string        `json:"oc_date"`
	TransportMode TransportMode `json:"transport_mode"`
	Scadenza      string        `json:"scadenza"`
}

type NewMisLineItem struct {
	Description     string `json:"description"`
	Rate            string `json:"rate"`
	OrderedQty      string `json:"ordered_qty"`
	InvoiceNo       string `json:"invoice_no"`
	InvoiceQty      string `json:"invoice_qty"`
	InvoiceDate     string `json:"invoice_date"`
	BlDate          string `json:"bl_date"`
	PaymentTermDays *int   `json:"payment_term_days"`
	PaymentStatus   YesNo  `json:"payment_status"`
	DocInvoice      YesNo  `json:"doc_invoice"`
	DocPackingList  YesNo  `json:"doc_packing_list"`
	DocCoa          YesNo  `json:"doc_coa"`
	DocHealthCert   YesNo  `json:"doc_health_cert"`
	DocOriginCert   YesNo  `json:"doc_origin_cert"`
	DocInsurance    YesNo  `json:"doc_insurance"`
	Remark          string `json:"remark"`
}

// NewMisEntry is one entry-form submission: a shared header plus one or
// more line items, each becoming its own row.
type NewMisEntry struct {
	NewMisHeader
	Items []NewMisLineItem `json:"items" binding:"required,min=1,dive"`
}

// NewMisRow is the edit form: a full-row replace of all mutable fields.
type NewMisRow struct {
	NewMisHeader
	NewMisLineItem
}

func yesNoOrDefault(v YesNo) YesNo {
	if v == Yes {
		return Yes
	}
	return No
}

func transportOrDefault(v TransportMode) TransportMode {
	if v == TransportModeAir {
		return TransportModeAir
	}
	return TransportModeSea
}

func buildMisRow(header NewMisHeader, item NewMisLineItem) MisRow {
	row := MisRow{
		Sr:              header.Sr,
		Customer:        header.Customer,
		FinancialYear:   header.FinancialYear,
		PoNo:            header.PoNo,
		PoDate:          dateStringOrNil(header.PoDate),
		OcNo:            header.OcNo,
		OcDate:          dateStringOrNil(header.OcDate),
		TransportMode:   transportOrDefault(header.TransportMode),
		Scadenza:        dateStringOrNil(header.Scadenza),
		Description:     item.Description,
		Rate:            utils.ParseDecimalOrZero(item.Rate),
		OrderedQty:      utils.ParseDecimalOrZero(item.OrderedQty),
		InvoiceNo:       item.InvoiceNo,
		InvoiceQty:      utils.ParseDecimalOrZero(item.InvoiceQty),
		InvoiceDate:     dateStringOrNil(item.InvoiceDate),
		BlDate:          dateStringOrNil(item.BlDate),
		PaymentTermDays: item.PaymentTermDays,
		PaymentStatus:   yesNoOrDefault(item.PaymentStatus),
		DocInvoice:      yesNoOrDefault(item.DocInvoice),
		DocPackingList:  yesNoOrDefault(item.DocPackingList),
		DocCoa:          yesNoOrDefault(item.DocCoa),
		DocHealthCert:   yesNoOrDefault(item.DocHealthCert),
		DocOriginCert:   yesNoOrDefault(item.DocOriginCert),
		DocInsurance:    yesNoOrDefault(item.DocInsurance),
		Remark:          item.Remark,
	}
	refreshDueDate(&row)
	return row
}

func dateStringOrNil(value string) *DateString {
	t := utils.ParseDateOrNil(value)
	if t == nil {
		return nil
	}
	return NewDateString(*t)
}

// refreshDueDate keeps the stored due date consistent with the inputs
// it derives from. Views recompute anyway; the column exists so raw
// table dumps stay truthful.
func refreshDueDate(row *MisRow) {
	var bl *time.Time
	if row.BlDate != nil {
		bl = row.BlDate.Time()
	}
	due := ComputeDueDate(bl, row.PaymentTermDays)
	if due == nil {
		row.DueDate = nil
		return
	}
	row.DueDate = NewDateString(*due)
}

// CreateMisRows inserts one row per line item, all sharing the entry
// header, inside a single transaction together with their audit records.
func CreateMisRows(ctx context.Context, company Company, input *NewMisEntry) ([]*MisRow, error) {
	if len(input.Items) == 0 {
		return nil, errors.New("at least one line item is required")
	}

	db := config.GetDB()
	rows := make([]*MisRow, 0, len(input.Items))
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range input.Items {
			row := buildMisRow(input.NewMisHeader, item)
			if err := tx.Table(company.Table).Create(&row).Error; err != nil {
				return err
			}
			if err := writeAuditRecord(ctx, tx, company, AuditActionCreate, row.ID, nil, &row); err != nil {
				return err
			}
			rows = append(rows, &row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMisRows returns the company's full snapshot in store order
// (sr ASC, id ASC). Every view, export and aggregation starts from a
// fresh snapshot; nothing is cached between requests.
func ListMisRows(ctx context.Context, company Company) ([]*MisRow, error) {
	db := config.GetDB()
	var rows []*MisRow
	if err := db.WithContext(ctx).Table(company.Table).
		Order("sr ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMisRow fetches one row by id (may return RecordNotFound).
func GetMisRow(ctx context.Context, company Company, id int) (*MisRow, error) {
	return getMisRow(config.GetDB().WithContext(ctx), company, id)
}

// getMisRow maps an absent row to ErrorRecordNotFound and passes every
// other store error through untouched, so callers can tell "not there"
// from "could not ask".
func getMisRow(tx *gorm.DB, company Company, id int) (*MisRow, error) {
	var row MisRow
	if err := tx.Table(company.Table).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &row, nil
}

// UpdateMisRow replaces every mutable field of the row (full-row edit).
// The id and creation timestamp are immutable.
func UpdateMisRow(ctx context.Context, company Company, id int, input *NewMisRow) (*MisRow, error) {
	db := config.GetDB()

	oldRow, err := GetMisRow(ctx, company, id)
	if err != nil {
		return nil, err
	}

	updated := buildMisRow(input.NewMisHeader, input.NewMisLineItem)
	updated.ID = id
	updated.CreatedAt = oldRow.CreatedAt

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(company.Table).Where("id = ?", id).Updates(map[string]interface{}{
			"sr":                updated.Sr,
			"customer":          updated.Customer,
			"financial_year":    updated.FinancialYear,
			"po_no":             updated.PoNo,
			"po_date":           updated.PoDate,
			"oc_no":             updated.OcNo,
			"oc_date":           updated.OcDate,
			"transport_mode":    updated.TransportMode,
			"scadenza":          updated.Scadenza,
			"description":       updated.Description,
			"rate":              updated.Rate,
			"ordered_qty":       updated.OrderedQty,
			"invoice_no":        updated.InvoiceNo,
			"invoice_qty":       updated.InvoiceQty,
			"invoice_date":      updated.InvoiceDate,
			"bl_date":           updated.BlDate,
			"payment_term_days": updated.PaymentTermDays,
			"due_date":          updated.DueDate,
			"payment_status":    updated.PaymentStatus,
			"doc_invoice":       updated.DocInvoice,
			"doc_packing_list":  updated.DocPackingList,
			"doc_coa":           updated.DocCoa,
			"doc_health_cert":   updated.DocHealthCert,
			"doc_origin_cert":   updated.DocOriginCert,
			"doc_insurance":     updated.DocInsurance,
			"remark":            updated.Remark,
		}).Error; err != nil {
			return err
		}
		return writeAuditRecord(ctx, tx, company, AuditActionUpdate, id, oldRow, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMisRow removes the row by id. Deleting an absent id is a no-op;
// ids are never reused (auto increment).
func DeleteMisRow(ctx context.Context, company Company, id int) error {
	db := config.GetDB()

	oldRow, err := GetMisRow(ctx, company, id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil
		}
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(company.Table).Where("id = ?", id).Delete(&MisRow{}).Error; err != nil {
			return err
		}
		return writeAuditRecord(ctx, tx, company, AuditActionDelete, id, oldRow, nil)
	})
}
