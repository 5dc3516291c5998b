package models

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "easyfinances-backend-url"
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
			level:  gorm_logger.Info, // filtering by level is done by zerolog
		},
	}
}

// Connect opens the SQLite database at dsn, migrates it and configures
// the connection pool.
func Connect(dsn string) error {
	// Create the directory unless the database is in memory
	if dir := filepath.Dir(dsn); !strings.HasPrefix(dsn, ":memory:") && dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create data directory: %w", err)
		}
	}

	config := gormConfig()

	// Migration with foreign keys disabled since sqlite does not support
	// ALTER COLUMN. Tables are copied to a temporary table, then the
	// table is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	db, err = gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// One connection prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return setup(db)
}

// ConnectPostgres opens the PostgreSQL database for the DSN and migrates it.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return setup(db)
}

// setup registers the callbacks and sets the exported variable.
func setup(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "easyfinances:after_query", queryCallback},
		{db.Callback().Query().After("*"), "easyfinances:after_query_general", generalCallback},
		{db.Callback().Row().After("*"), "easyfinances:after_row_general", generalCallback},
		{db.Callback().Create().After("*"), "easyfinances:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "easyfinances:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "easyfinances:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "easyfinances:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "easyfinances:after_delete", deleteCallback},
		{db.Callback().Delete().After("*"), "easyfinances:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if uniqueViolation(db.Error, "categories.user_id, categories.name", "category_user_name") {
		db.Error = ErrCategoryNameNotUnique
		return
	}

	if foreignKeyViolation(db.Error) {
		db.Error = ErrReferenceInvalid
	}
}

// deleteCallback rejects deletion of categories that are still referenced.
// The explicit check in Category.BeforeDelete covers most cases, the
// foreign key covers concurrent inserts.
func deleteCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if db.Statement.Table == "categories" && foreignKeyViolation(db.Error) {
		db.Error = ErrCategoryInUse
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if databaseError(db.Error) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// databaseError reports if the error comes from the database or its driver.
func databaseError(err error) bool {
	var sqliteErr *go_sqlite.Error
	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module
	return err.Error() == "sql: database is closed" ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, sql.ErrTxDone) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.As(err, &sqliteErr) ||
		errors.As(err, &pgErr)
}

// RunInTransaction runs fc in a database transaction.
//
// Errors from starting or committing the transaction do not pass through
// the callbacks, they are reported as ErrGeneral here.
func RunInTransaction(db *gorm.DB, fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	err := db.Transaction(fc, opts...)
	if err != nil && databaseError(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

func uniqueViolation(err error, sqliteColumns, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+sqliteColumns)
}

func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Account{}, Category{}, Transaction{}, BudgetGoal{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
