package spio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/banshee-data/trackseed/internal/seeding"
)

// seedCSVHeader is the column layout written by WriteSeeds.
var seedCSVHeader = []string{
	"group", "weight", "z_vertex",
	"bx", "by", "bz",
	"mx", "my", "mz",
	"tx", "ty", "tz",
}

// WriteSeeds writes one CSV row per seed, grouped in emission order.
func WriteSeeds(w io.Writer, groups [][]seeding.Seed) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seedCSVHeader); err != nil {
		return fmt.Errorf("write seed header: %w", err)
	}
	for gi, seeds := range groups {
		for _, s := range seeds {
			row := []string{
				strconv.Itoa(gi),
				formatFloat(s.Weight),
				formatFloat(s.Z),
				formatFloat(s.Bottom.X), formatFloat(s.Bottom.Y), formatFloat(s.Bottom.Z),
				formatFloat(s.Middle.X), formatFloat(s.Middle.Y), formatFloat(s.Middle.Z),
				formatFloat(s.Top.X), formatFloat(s.Top.Y), formatFloat(s.Top.Z),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write seed row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeedFile writes seeds to a CSV file on disk.
func WriteSeedFile(path string, groups [][]seeding.Seed) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create seed file: %w", err)
	}
	if err := WriteSeeds(f, groups); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
