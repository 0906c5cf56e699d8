package observation

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Emeline-1/magnifier/internal/ingress"
	"github.com/Emeline-1/magnifier/internal/ipaddr"
)

// ErrMalformedRecord classifies a line that does not parse as the
// 14-field CSV contract of spec.md §6.
var ErrMalformedRecord = errors.New("observation: malformed record")

const fieldCount = 14

// Store reads the preprocessed packet CSV once, lazily, strictly
// forward. It never seeks. Gzip-compressed input is detected by the
// ".gz" filename suffix and decompressed transparently, the same way
// the teacher's CompressedReader handles compressed auxiliary files.
type Store struct {
	file     *os.File
	gzReader *gzip.Reader
	scanner  *bufio.Scanner

	// OnMalformed, if set, is called for every line skipped as
	// malformed-record or invalid-ip (spec.md §7); it never aborts
	// the read.
	OnMalformed func(line string, err error)
}

// Open opens path for reading, transparently decompressing a ".gz"
// suffix.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("observation: %w", err)
	}

	s := &Store{file: f}
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("observation: %w", err)
		}
		s.gzReader = gz
		r = gz
	}

	s.scanner = bufio.NewScanner(r)
	s.scanner.Buffer(make([]byte, 64*1024), 1<<20)
	return s, nil
}

// Close releases the underlying file (and gzip reader, if any).
func (s *Store) Close() error {
	if s.gzReader != nil {
		s.gzReader.Close()
	}
	return s.file.Close()
}

// Window reads the next window of records. sliceDuration is either a
// packet count (replayRealSpeed == false) or a number of seconds
// (replayRealSpeed == true), matching get_preprocessed_pkts's
// slice_duration := end - start. An empty Window with a nil error
// signals end of file — the driver's termination condition.
func (s *Store) Window(sliceDuration int, replayRealSpeed bool, nBorder int, mapper ingress.Mapper) (Window, error) {
	col, ok := ingress.ColumnFor(nBorder)
	if !ok {
		return Window{}, fmt.Errorf("observation: invalid n_border %d", nBorder)
	}
	_ = col // column resolution happens inside mapper

	w := Window{
		BorderPkts:  make([][]Record, nBorder),
		BorderFlags: make([][]bool, nBorder),
	}

	var startTS int64
	haveStart := false
	i := 0

	for s.scanner.Scan() {
		line := s.scanner.Text()
		rec, err := s.parseLine(line, mapper)
		if err != nil {
			if s.OnMalformed != nil {
				s.OnMalformed(line, err)
			}
			continue
		}

		if !haveStart {
			startTS = int64(rec.TS)
			haveStart = true
		}
		i++

		w.Pkts = append(w.Pkts, rec)
		w.Timestamps = append(w.Timestamps, rec.TS)
		w.Flags = append(w.Flags, rec.Flag)

		idx := rec.Ingress - 1
		w.BorderPkts[idx] = append(w.BorderPkts[idx], rec)
		w.BorderFlags[idx] = append(w.BorderFlags[idx], rec.Flag)

		if !replayRealSpeed {
			if i == sliceDuration {
				break
			}
		} else if int64(rec.TS)-startTS >= int64(sliceDuration) {
			break
		}
	}

	if err := s.scanner.Err(); err != nil {
		return Window{}, fmt.Errorf("observation: %w", err)
	}

	return w, nil
}

func (s *Store) parseLine(line string, mapper ingress.Mapper) (Record, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != fieldCount {
		return Record{}, fmt.Errorf("%w: got %d fields", ErrMalformedRecord, len(fields))
	}

	ts, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: timestamp: %v", ErrMalformedRecord, err)
	}

	srcIP, err := ipaddr.ParseAddrInt(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	src24, err := ipaddr.ParsePrefix(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	var row ingress.Row
	row.Src24 = src24
	cols := [5]string{fields[3], fields[4], fields[5], fields[6], fields[7]}
	for i, f := range cols {
		v, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return Record{}, fmt.Errorf("%w: rand column: %v", ErrMalformedRecord, err)
		}
		row.Rand[i] = uint16(v)
	}
	persCols := [5]string{fields[8], fields[9], fields[10], fields[11], fields[12]}
	for i, f := range persCols {
		v, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return Record{}, fmt.Errorf("%w: pers column: %v", ErrMalformedRecord, err)
		}
		row.Pers[i] = uint16(v)
	}

	flag := fields[13] == "1"

	return Record{
		SrcIP:   srcIP,
		Src24:   src24,
		Ingress: mapper.Resolve(row),
		Flag:    flag,
		TS:      ts,
	}, nil
}
