package parser

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"git.lost.host/meutraa/divads/internal/game"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("divads.parser")

var ErrBadChart = errors.New("bad chart file")

// Signature expected in the reserved first word
const Signature = 0x14050921

const Ext = ".dsc"

var chartName = regexp.MustCompile(`^pv_(\d+)_([a-z0-9_]+)\.dsc$`)

type DefaultParser struct{}

// ParseName extracts the song id and difficulty from pv_NNN_<difficulty>.dsc.
func ParseName(file string) (int, game.Difficulty, bool) {
	m := chartName.FindStringSubmatch(strings.ToLower(filepath.Base(file)))
	if m == nil {
		return 0, 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	d, ok := game.ParseDifficulty(m[2])
	return id, d, ok
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	if len(data) < 4 || len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %v is %v bytes", ErrBadChart, file, len(data))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	if words[0] != Signature {
		log.Debugf("%v has signature %#x", file, words[0])
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	chart := &game.Chart{Name: name, Words: words, Difficulty: game.DifficultyNormal}
	if id, d, ok := ParseName(file); ok {
		chart.SongID = id
		chart.Difficulty = d
	} else {
		log.Warningf("unable to tell song and difficulty from %v", file)
	}
	return chart, nil
}

func (p *DefaultParser) Scan(dir string) ([]string, error) {
	files := []string{}
	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), Ext) {
			files = append(files, p)
		}
		return nil
	}); nil != err {
		return nil, fmt.Errorf("unable to walk song directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
