package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single input row; long lab rows are the norm.
const maxLineBytes = 16 << 20

// splitCSV splits one row on commas outside double quotes and trims every field.
func splitCSV(line string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuote = !inQuote
		case ch == ',' && !inQuote:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	out = append(out, cur.String())
	for i := range out {
		out[i] = strings.Trim(out[i], " \t\r")
	}
	return out
}

// skipLine reports whether a row outside an instance carries no data: blank
// rows, # comments and the instance_id header.
func skipLine(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, "#") || strings.Contains(line, "instance_id")
}

func atoiField(f string, line int, name string, minVal int) (int, error) {
	v, err := strconv.Atoi(f)
	if err != nil {
		return 0, parseErrorf(line, "%s %q is not an integer", name, f)
	}
	if v < minVal {
		return 0, parseErrorf(line, "%s %d is below %d", name, v, minVal)
	}
	return v, nil
}

// ParseInstances reads the row-oriented instance format:
//
//	instance_id,L,C,T
//	inst01,2,1,10
//	lab,3,4,4,2
//	lab,1,7
//
// Each instance header is followed by exactly L lab rows. Any malformed row
// aborts the whole read with a *ParseError.
func ParseInstances(r io.Reader) ([]*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []*Instance
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if skipLine(text) {
			continue
		}

		head := splitCSV(text)
		if head[0] == "lab" {
			return nil, parseErrorf(line, "lab row outside an instance (missing instance header?)")
		}
		if len(head) != 4 {
			return nil, parseErrorf(line, "instance header has %d fields, want 4 (instance_id,L,C,T)", len(head))
		}
		numLabs, err := atoiField(head[1], line, "L", 0)
		if err != nil {
			return nil, err
		}
		c, err := atoiField(head[2], line, "C", 0)
		if err != nil {
			return nil, err
		}
		t, err := atoiField(head[3], line, "T", 1)
		if err != nil {
			return nil, err
		}
		in := &Instance{ID: head[0], Checkpoints: c, Horizon: t, Labs: make([]Lab, 0, numLabs)}

		for i := 0; i < numLabs; i++ {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, fmt.Errorf("read instances: %w", err)
				}
				return nil, parseErrorf(line, "unexpected end of input: instance %s has %d of %d lab rows", in.ID, i, numLabs)
			}
			line++
			lab, err := parseLabRow(splitCSV(sc.Text()), line)
			if err != nil {
				return nil, err
			}
			in.Labs = append(in.Labs, lab)
		}
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read instances: %w", err)
	}
	return out, nil
}

func parseLabRow(row []string, line int) (Lab, error) {
	if row[0] != "lab" {
		return Lab{}, parseErrorf(line, "expected lab row, got %q", row[0])
	}
	if len(row) < 2 {
		return Lab{}, parseErrorf(line, "lab row has no job count")
	}
	count, err := atoiField(row[1], line, "job count", 0)
	if err != nil {
		return Lab{}, err
	}
	if len(row) != count+2 {
		return Lab{}, parseErrorf(line, "lab row declares %d jobs but lists %d", count, len(row)-2)
	}
	jobs := make([]int, count)
	for k := range jobs {
		if jobs[k], err = atoiField(row[2+k], line, "duration", 1); err != nil {
			return Lab{}, err
		}
	}
	return Lab{Jobs: jobs}, nil
}

// isJSONPath reports whether path should be read with the JSON reader.
func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// readInstances parses r as JSON when asJSON is set and as CSV rows otherwise.
func readInstances(r io.Reader, asJSON bool) ([]*Instance, error) {
	if !asJSON {
		return ParseInstances(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read instances: %w", err)
	}
	return ParseInstancesJSON(string(data))
}

// LoadInstances reads every instance in the file at path. Files ending in
// .json use the JSON layout; everything else is read as CSV rows.
func LoadInstances(path string) ([]*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ins, err := readInstances(f, isJSONPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ins, nil
}
