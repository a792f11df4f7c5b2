package models

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/mis_backend/utils"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// downConnector fails every connection attempt with a fixed error,
// standing in for a store that is unreachable.
type downDriver struct{ err error }

func (d downDriver) Open(string) (driver.Conn, error) { return nil, d.err }

type downConnector struct{ err error }

func (c downConnector) Connect(context.Context) (driver.Conn, error) { return nil, c.err }
func (c downConnector) Driver() driver.Driver                        { return downDriver{c.err} }

func unreachableDB(t *testing.T, cause error) *gorm.DB {
	t.Helper()
	sqlDB := sql.OpenDB(downConnector{err: cause})
	db, err := gorm.Open(mysqldriver.New(mysqldriver.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

// A store outage must surface as its own error, never as a missing
// record: callers treat ErrorRecordNotFound as 404 (or a delete no-op),
// which would silently hide the outage.
func TestGetMisRowReportsStoreFailure(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")
	db := unreachableDB(t, cause)
	company, err := GetCompany("IPS")
	if err != nil {
		t.Fatalf("company: %v", err)
	}

	_, err = getMisRow(db, company, 1)
	if err == nil {
		t.Fatal("expected an error from an unreachable store")
	}
	if errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("store failure reported as missing record: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the store error to pass through, got %v", err)
	}
}
