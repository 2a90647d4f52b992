package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Validate bool
	Resolve  bool
	Load     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Validate = boolEnv("DATASPEC_DEBUG_VALIDATE")
	d.Resolve = boolEnv("DATASPEC_DEBUG_RESOLVE")
	d.Load = boolEnv("DATASPEC_DEBUG_LOAD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Validate() bool {
	return d.Validate
}
func Resolve() bool {
	return d.Resolve
}
func Load() bool {
	return d.Load
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
