package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"git.lost.host/meutraa/divads/internal/game"
	_ "github.com/mattn/go-sqlite3"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("divads.score")

type DefaultStore struct {
	Path string
	db   *sql.DB
}

func (s *DefaultStore) Init() error {
	path := s.Path
	if path == "" {
		path = "./scores.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	initStatement := `
	create table if not exists records
	  (
		  song integer not null,
		  difficulty integer not null,
		  score integer,
		  clear real,
		  rank integer,
		  primary key (song, difficulty)
	  );
	create table if not exists replays
	  (
		  id integer not null primary key,
		  sum text,
		  flytime integer,
		  inputs blob
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create score tables: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// HashChart identifies a chart by its bytecode.
func HashChart(c *game.Chart) string {
	data := make([]byte, 4*len(c.Words))
	for i, w := range c.Words {
		binary.LittleEndian.PutUint32(data[4*i:], w)
	}
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultStore) Best(c *game.Chart) (Record, bool) {
	var r Record
	row := s.db.QueryRow("select score, clear, rank from records where song = ? and difficulty = ?", c.SongID, c.Difficulty)
	if err := row.Scan(&r.Score, &r.Clear, &r.Rank); err != nil {
		if err != sql.ErrNoRows {
			log.Errorf("unable to load record for %v: %v", c.Name, err)
		}
		return Record{}, false
	}
	return r, true
}

func (s *DefaultStore) Submit(c *game.Chart, record Record) (bool, error) {
	best, ok := s.Best(c)
	if ok && !best.Merge(record) {
		return false, nil
	}
	if !ok {
		best = record
	}
	_, err := s.db.Exec(
		"insert or replace into records(song, difficulty, score, clear, rank) values(?, ?, ?, ?, ?)",
		c.SongID, c.Difficulty, best.Score, best.Clear, best.Rank,
	)
	if nil != err {
		return false, fmt.Errorf("unable to save record: %w", err)
	}
	log.Infof("new record for %v %v: %v %.2f%% %v", c.Name, c.Difficulty, best.Score, best.Clear, best.Rank)
	return true, nil
}

func (s *DefaultStore) SaveReplay(c *game.Chart, replay *Replay) error {
	data, err := MarshalReplay(replay)
	if nil != err {
		return fmt.Errorf("unable to marshal replay: %w", err)
	}
	_, err = s.db.Exec("insert into replays(sum, flytime, inputs) values(?, ?, ?)", HashChart(c), int64(replay.FlyTime), data)
	if nil != err {
		return fmt.Errorf("unable to save replay: %w", err)
	}
	return nil
}

func (s *DefaultStore) LoadReplays(c *game.Chart) []Replay {
	replays := []Replay{}
	rows, err := s.db.Query("select sum, inputs from replays where sum = ? order by id", HashChart(c))
	if nil != err {
		log.Errorf("unable to load replays: %v", err)
		return replays
	}
	defer rows.Close()
	for rows.Next() {
		var sum string
		var data []byte
		if err := rows.Scan(&sum, &data); err != nil {
			log.Errorf("unable to scan replay: %v", err)
			continue
		}
		replay, err := UnmarshalReplay(data)
		if nil != err {
			log.Warningf("skipping replay: %v", err)
			continue
		}
		replay.Sum = sum
		replays = append(replays, *replay)
	}
	return replays
}
