package main

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseInstancesJSON reads instances from either
//
//	{"instances": [{"id": "inst01", "checkpoints": 1, "horizon": 10, "labs": [[3, 3], [5]]}]}
//
// or a bare array of the same objects. An optional "labCount" field must match
// the number of labs given.
func ParseInstancesJSON(data string) ([]*Instance, error) {
	if !gjson.Valid(data) {
		return nil, &ParseError{Msg: "invalid JSON"}
	}
	list := gjson.Parse(data)
	if list.IsObject() {
		list = list.Get("instances")
	}
	if !list.IsArray() {
		return nil, &ParseError{Msg: `expected an "instances" array`}
	}

	var out []*Instance
	var perr error
	list.ForEach(func(key, v gjson.Result) bool {
		in, err := parseInstanceJSON(v, int(key.Int()))
		if err != nil {
			perr = err
			return false
		}
		out = append(out, in)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return out, nil
}

func parseInstanceJSON(v gjson.Result, idx int) (*Instance, error) {
	where := fmt.Sprintf("instance %d", idx)
	if !v.IsObject() {
		return nil, &ParseError{Msg: where + ": not an object"}
	}

	id := v.Get("id")
	in := &Instance{ID: id.String()}
	if !id.Exists() || in.ID == "" {
		in.ID = fmt.Sprintf("inst%02d", idx+1)
	}
	where = "instance " + in.ID

	var err error
	if in.Checkpoints, err = jsonInt(v.Get("checkpoints"), where+": checkpoints", 0); err != nil {
		return nil, err
	}
	if in.Horizon, err = jsonInt(v.Get("horizon"), where+": horizon", 1); err != nil {
		return nil, err
	}

	labs := v.Get("labs")
	if !labs.IsArray() {
		return nil, &ParseError{Msg: where + `: "labs" must be an array of job lists`}
	}
	labs.ForEach(func(li, lv gjson.Result) bool {
		if !lv.IsArray() {
			err = &ParseError{Msg: fmt.Sprintf("%s: lab %d is not an array", where, li.Int())}
			return false
		}
		var jobs []int
		lv.ForEach(func(_, d gjson.Result) bool {
			var dur int
			dur, err = jsonInt(d, fmt.Sprintf("%s: lab %d duration", where, li.Int()), 1)
			jobs = append(jobs, dur)
			return err == nil
		})
		if jobs == nil {
			jobs = []int{}
		}
		in.Labs = append(in.Labs, Lab{Jobs: jobs})
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	if lc := v.Get("labCount"); lc.Exists() {
		n, err := jsonInt(lc, where+": labCount", 0)
		if err != nil {
			return nil, err
		}
		if n != len(in.Labs) {
			return nil, &ParseError{Msg: fmt.Sprintf("%s: labCount is %d but %d labs are listed", where, n, len(in.Labs))}
		}
	}
	return in, nil
}

func jsonInt(v gjson.Result, name string, minVal int) (int, error) {
	if !v.Exists() {
		return 0, &ParseError{Msg: name + " is missing"}
	}
	if v.Type != gjson.Number || v.Num != float64(v.Int()) {
		return 0, &ParseError{Msg: fmt.Sprintf("%s %s is not an integer", name, v.Raw)}
	}
	n := int(v.Int())
	if n < minVal {
		return 0, &ParseError{Msg: fmt.Sprintf("%s %d is below %d", name, n, minVal)}
	}
	return n, nil
}
