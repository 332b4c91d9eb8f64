package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"time"

	"git.lost.host/meutraa/dyntrack/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotInitialised = errors.New("history store is not initialised")

type DefaultStore struct {
	Path string
	db   *sql.DB
}

func HashChart(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultStore) Init() error {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return err
	}

	initStatement := `
	create table if not exists applications
	  (
		  id integer not null primary key,
		  sum text,
		  chart text,
		  difficulty text,
		  source text,
		  path text,
		  triggers integer,
		  applied_at integer
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

func (s *DefaultStore) Save(r Record) error {
	if nil == s.db {
		return ErrNotInitialised
	}
	_, err := s.db.Exec(
		"insert into applications(sum, chart, difficulty, source, path, triggers, applied_at) values(?, ?, ?, ?, ?, ?, ?)",
		r.Sum, r.Chart, string(r.Difficulty), r.Source.String(), r.Path, r.Triggers, r.AppliedAt.Unix(),
	)
	return err
}

func (s *DefaultStore) Load(sum string) ([]Record, error) {
	if nil == s.db {
		return nil, ErrNotInitialised
	}
	records := []Record{}
	rows, err := s.db.Query(
		"select sum, chart, difficulty, source, path, triggers, applied_at from applications where sum = ? order by id",
		sum,
	)
	if nil != err {
		return records, err
	}
	defer rows.Close()

	for rows.Next() {
		var r Record
		var difficulty, source string
		var appliedAt int64
		if err := rows.Scan(&r.Sum, &r.Chart, &difficulty, &source, &r.Path, &r.Triggers, &appliedAt); nil != err {
			return records, err
		}
		r.Difficulty = game.Difficulty(difficulty)
		r.Source = game.ParseSource(source)
		r.AppliedAt = time.Unix(appliedAt, 0)
		records = append(records, r)
	}
	return records, rows.Err()
}
