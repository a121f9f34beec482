package client

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore - долговременное локальное хранилище поверх одной
// key-value таблицы. При сбое записи на диск значение сохраняется
// во внутреннем оверлее в памяти, ошибка логируется и не доходит до
// вызывающего кода.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger

	mu      sync.RWMutex
	userID  string
	overlay map[string][]byte
}

func NewSQLiteStore(path string, log *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка миграции схемы: %w", err)
	}

	return &SQLiteStore{
		db:      db,
		log:     log,
		overlay: make(map[string][]byte),
	}, nil
}

func migrateSchema(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("ошибка инициализации драйвера миграций: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("ошибка чтения миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLiteStore) SetUserID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = id
}

func (s *SQLiteStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *SQLiteStore) Save(collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ошибка сериализации значения %q: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := storageKey(collection, s.userID)
	_, execErr := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), time.Now().UTC().Format(time.RFC3339Nano))

	if execErr != nil {
		// Сбой диска не должен ронять вызывающий код: значение
		// остается в памяти до конца сессии.
		s.overlay[key] = data
		s.log.Error("Не удалось записать значение, работаем в памяти",
			"collection", collection, "error", execErr)
		return nil
	}

	delete(s.overlay, key)
	return nil
}

func (s *SQLiteStore) Load(collection string, v any) error {
	s.mu.RLock()
	key := storageKey(collection, s.userID)
	data, inOverlay := s.overlay[key]
	s.mu.RUnlock()

	if !inOverlay {
		var value string
		err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			// Чтение тоже не роняет вызывающий код: промах читается
			// как отсутствие значения.
			s.log.Error("Не удалось прочитать значение",
				"collection", collection, "error", err)
			return nil
		}
		data = []byte(value)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ошибка разбора значения %q: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := storageKey(collection, s.userID)
	delete(s.overlay, key)

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		s.log.Error("Не удалось удалить значение",
			"collection", collection, "error", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
