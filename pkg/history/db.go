package history

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/photoframed/internal/xerror"
	"github.com/tauraamui/photoframed/pkg/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	vendorName       = "tauraamui"
	appName          = "photoframed"
	databaseFileName = "photoframed.db"
)

var uc = os.UserCacheDir
var fs = afero.NewOsFs()

// Connect opens the folder history database, creating and
// migrating it in place when absent.
func Connect() (*gorm.DB, error) {
	dbPath, err := resolveDBPath(uc)
	if err != nil {
		return nil, err
	}

	log.Debug("Connecting to DB: %s", dbPath) //nolint
	db, err := openDBConnection(dbPath)
	if err != nil {
		return nil, xerror.Errorf("unable to open db connection: %w", err).ToError()
	}

	if err := db.AutoMigrate(&FolderUse{}); err != nil {
		return nil, xerror.Errorf("unable to run automigrations: %w", err).ToError()
	}

	return db, nil
}

func Destroy() error {
	dbFilePath, err := resolveDBPath(uc)
	if err != nil {
		return xerror.Errorf("unable to delete database file: %w", err).ToError()
	}

	return fs.Remove(dbFilePath)
}

var openDBConnection = func(path string) (*gorm.DB, error) {
	l := logger.New(nil, logger.Config{LogLevel: logger.Silent})
	return gorm.Open(sqlite.Open(path), &gorm.Config{Logger: l})
}

func resolveDBPath(uc func() (string, error)) (string, error) {
	parentDir, err := uc()
	if err != nil {
		return "", xerror.Errorf("unable to resolve user cache dir: %w", err).ToError()
	}

	dirPath := filepath.Join(parentDir, vendorName, appName)
	if err := fs.MkdirAll(dirPath, os.ModeDir|os.ModePerm); err != nil {
		return "", xerror.Errorf("unable to create database parent directory: %w", err).ToError()
	}

	return filepath.Join(dirPath, databaseFileName), nil
}
