package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

const createStorageTableSQL = `
CREATE TABLE IF NOT EXISTS Storage (
    StorageKey TEXT PRIMARY KEY,
    Value TEXT,
    UpdatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const createGamesTableSQL = `
CREATE TABLE IF NOT EXISTS Games (
    ID INTEGER PRIMARY KEY AUTOINCREMENT,
    Mode TEXT,
    Score INTEGER,
    Level INTEGER,
    EndedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const createGamesIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_games_mode ON Games (Mode, Score DESC);
`

// Open 打开数据库并建表
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// 内存库每个连接都是独立的
	db.SetMaxOpenConns(1)
	if err := InitializeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func InitializeDatabase(db *sql.DB) error {
	for _, stmt := range []string{createStorageTableSQL, createGamesTableSQL, createGamesIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("error executing SQL statement: %s: %w", stmt, err)
		}
	}
	return nil
}

// Store 把各模式最高分以 JSON 形式存在固定的键下
type Store struct {
	db  *sql.DB
	key string
}

func NewStore(db *sql.DB, key string) *Store {
	return &Store{db: db, key: key}
}

// Load 读取最高分。没有记录时返回空表；数据损坏时返回错误，由调用方降级处理。
func (s *Store) Load() (map[string]int, error) {
	scores := make(map[string]int)

	var raw string
	err := s.db.QueryRow("SELECT Value FROM Storage WHERE StorageKey = ?", s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return scores, nil
	}
	if err != nil {
		return scores, fmt.Errorf("load %s: %w", s.key, err)
	}
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return make(map[string]int), fmt.Errorf("decode %s: %w", s.key, err)
	}
	return scores, nil
}

// Save 覆盖写入最高分
func (s *Store) Save(scores map[string]int) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("INSERT OR REPLACE INTO Storage (StorageKey, Value, UpdatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)", s.key, string(data))
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// RecordGame 记录一局结果，并在同一事务里更新最高分
func (s *Store) RecordGame(mode string, score, level int, scores map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT INTO Games (Mode, Score, Level) VALUES (?, ?, ?)", mode, score, level)
	if err != nil {
		tx.Rollback()
		return err
	}

	data, err := json.Marshal(scores)
	if err != nil {
		tx.Rollback()
		return err
	}
	_, err = tx.Exec("INSERT OR REPLACE INTO Storage (StorageKey, Value, UpdatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)", s.key, string(data))
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GameRecord 是一局结束后的记录
type GameRecord struct {
	Mode  string `json:"mode"`
	Score int    `json:"score"`
	Level int    `json:"level"`
}

// TopGames 返回某模式得分最高的若干局
func (s *Store) TopGames(mode string, limit int) ([]GameRecord, error) {
	rows, err := s.db.Query("SELECT Mode, Score, Level FROM Games WHERE Mode = ? ORDER BY Score DESC, ID ASC LIMIT ?", mode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		if err := rows.Scan(&r.Mode, &r.Score, &r.Level); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		log.Printf("top games %s: %v", mode, err)
		return records, err
	}
	return records, nil
}
