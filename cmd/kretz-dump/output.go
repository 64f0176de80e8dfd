package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/kretzfile"
	"github.com/simonhull/kretzfile/internal/header"
)

type outputFormat int

const (
	formatTable outputFormat = iota
	formatYAML
	formatJSON
)

func parseFormat(s string) (outputFormat, error) {
	switch s {
	case "table", "":
		return formatTable, nil
	case "yaml":
		return formatYAML, nil
	case "json":
		return formatJSON, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want table, yaml or json)", s)
	}
}

// report is what gets printed for one file.
type report struct {
	Path     string             `yaml:"path" json:"path"`
	Metadata kretzfile.Metadata `yaml:"metadata" json:"metadata"`
	Stats    *kretzfile.Summary `yaml:"stats,omitempty" json:"stats,omitempty"`
}

func newReport(file *kretzfile.File, withStats bool) report {
	r := report{Path: file.Path, Metadata: file.Metadata()}
	if withStats {
		if vol, err := file.Volume(); err == nil {
			s := vol.Summary()
			r.Stats = &s
		}
	}
	return r
}

func printReport(w io.Writer, format outputFormat, r report) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return printTable(w, r)
	}
}

func printTable(w io.Writer, r report) error {
	md := r.Metadata
	d, s, o := md.Dimensions, md.Spacing, md.Origin

	pairs := [][2]string{
		{"File", r.Path},
		{"Version", md.Version},
		{"Frames", strconv.FormatUint(uint64(md.FrameCount), 10)},
		{"Dimensions", fmt.Sprintf("%d x %d x %d", d.X, d.Y, d.Z)},
		{"Spacing (mm)", fmt.Sprintf("%g x %g x %g", s.X, s.Y, s.Z)},
		{"Origin", fmt.Sprintf("%g, %g, %g", o.X, o.Y, o.Z)},
		{"Coordinate system", md.CoordinateSystem.String()},
		{"Data type", md.DataType.String()},
		{"Compressed", strconv.FormatBool(md.Compressed)},
		{"Volume data", presence(!md.VolumeDataMissing)},
		{"Patient", md.PatientName},
		{"Study", md.StudyDate + " " + md.StudyTime},
		{"Acquisition mode", md.AcquisitionMode},
		{"System", md.SystemName},
		{"Probe", md.ProbeName},
	}
	if st := r.Stats; st != nil {
		pairs = append(pairs,
			[2]string{"Voxels", strconv.Itoa(st.Count)},
			[2]string{"Min / Max", fmt.Sprintf("%g / %g", st.Min, st.Max)},
			[2]string{"Mean ± SD", fmt.Sprintf("%.4g ± %.4g", st.Mean, st.StdDev)},
			[2]string{"Median", fmt.Sprintf("%g", st.Median)},
		)
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator(":")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, p := range pairs {
		table.Append([]string{p[0], p[1]})
	}
	table.Render()
	return nil
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}

// printLayout prints each header field with its offset and raw bytes. It
// reads the file directly so it works on files the loader rejects.
func printLayout(w io.Writer, path string) error {
	data, err := readPrefix(path, 256)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Offset", "Size", "Field", "Encoding", "Raw"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, f := range header.Layout {
		raw := "<eof>"
		if f.Offset+f.Size <= len(data) {
			raw = abbreviate(hex.EncodeToString(data[f.Offset:f.Offset+f.Size]), 32)
		}
		table.Append([]string{
			strconv.Itoa(f.Offset),
			strconv.Itoa(f.Size),
			f.Name,
			f.Encoding,
			raw,
		})
	}
	table.Render()
	fmt.Fprintln(w)
	return nil
}

func readPrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:m], nil
}

func abbreviate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
