// Package spio reads space-point input files and writes seed output.
//
// The input format is line-oriented: rows starting with "lxyz" carry
// an index, a layer tag, Cartesian coordinates and raw variances.
// Other line types are ignored so mixed survey files can be fed in
// unfiltered.
package spio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/trackseed/internal/seeding"
)

// Variance conditioning constants for lxyz rows. The raw file carries
// a cluster width in the z column; the conditioned variances follow
// the detector's resolution model, which switches between barrel and
// endcap at |z| = EndcapZBoundary.
const (
	EndcapZBoundary    = 450.0
	widthVarianceScale = 0.08333
	varianceInflation  = 9.0
	pitchVariance      = 0.06
)

// ReadSpacePoints parses lxyz rows from r. Malformed lxyz rows are
// skipped; a row carrying non-finite values or negative variances
// aborts the read with seeding.ErrInputInvalid.
func ReadSpacePoints(r io.Reader) ([]seeding.SpacePoint, error) {
	var points []seeding.SpacePoint

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "lxyz" {
			continue
		}
		if len(fields) < 8 {
			continue
		}

		layer, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		var vals [5]float64
		ok := true
		for i, f := range fields[3:8] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		// Conditioning would mask a negative or non-finite raw
		// variance, so check the raw columns first.
		for _, v := range vals[3:] {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d: %w: raw variance %g", lineNo, seeding.ErrInputInvalid, v)
			}
		}

		x, y, z := vals[0], vals[1], vals[2]
		varianceR, varianceZ := conditionVariances(z, vals[3], vals[4])

		sp := seeding.NewSpacePoint(x, y, z, layer, varianceR, varianceZ)
		if err := sp.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		points = append(points, sp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading space points: %w", err)
	}
	return points, nil
}

// conditionVariances maps the raw (varianceR, clusterWidth) columns to
// working variances using the barrel/endcap resolution model.
func conditionVariances(z, rawVarR, width float64) (varianceR, varianceZ float64) {
	cov := width * width * widthVarianceScale
	if cov < rawVarR {
		cov = rawVarR
	}
	if math.Abs(z) > EndcapZBoundary {
		return pitchVariance, varianceInflation * cov
	}
	return varianceInflation * cov, pitchVariance
}

// ReadSpacePointFile reads an lxyz file from disk.
func ReadSpacePointFile(path string) ([]seeding.SpacePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open space point file: %w", err)
	}
	defer f.Close()
	points, err := ReadSpacePoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}
