// Package ingest reads bulk AIS CSV exports and groups per-vessel rows
// into chronologically ordered trajectories.
package ingest

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
	"github.com/halcyon-marine/aistrack/internal/geom"
)

const timestampLayout = "02/01/2006 15:04:05"

// wantedColumns is the exact header row a bulk AIS export must carry.
var wantedColumns = []string{
	"# Timestamp", "Type of mobile", "MMSI", "Latitude", "Longitude",
	"Navigational status", "ROT", "SOG", "COG", "Heading", "IMO",
	"Callsign", "Name", "Ship type", "Cargo type", "Width", "Length",
	"Type of position fixing device", "Draught", "Destination", "ETA",
	"Data source type", "A", "B", "C", "D",
}

// Row is one parsed AIS broadcast. Fields that may be empty in the
// source are nil pointers rather than zero values, distinguishing
// "not reported" from a genuine zero reading.
type Row struct {
	Timestamp         time.Time
	TypeOfMobile      string
	MMSI              uint64
	Latitude          float64
	Longitude         float64
	NavStatus         NavStatus
	ROT               *float64
	SOG               *float64
	COG               *float64
	Heading           *uint16
	IMO               string
	Callsign          string
	Name              string
	ShipType          string
	CargoType         string
	Width             *uint16
	Length            *uint16
	PositionFixDevice string
	Draught           *float64
	Destination       string
	DataSourceType    string
}

// ReadCSV parses a bulk AIS CSV export from r, one Row per data record.
// Malformed numeric fields are treated as absent (nil), matching the
// source's "all numeric fields may be empty -> None" contract; a
// malformed required field (timestamp, MMSI, latitude, longitude) fails
// the whole read with IoError.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, aiserr.Wrap(aiserr.KindIoError, "ReadCSV", "failed to read header row", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, want := range wantedColumns {
		if _, ok := index[want]; !ok {
			return nil, aiserr.New(aiserr.KindIoError, "ReadCSV", "missing required column: "+want)
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, aiserr.Wrap(aiserr.KindIoError, "ReadCSV", "failed to read record", err)
		}

		field := func(name string) string { return record[index[name]] }

		ts, err := time.Parse(timestampLayout, field("# Timestamp"))
		if err != nil {
			return nil, aiserr.Wrap(aiserr.KindIoError, "ReadCSV", "invalid timestamp", err)
		}
		mmsi, err := strconv.ParseUint(field("MMSI"), 10, 64)
		if err != nil {
			return nil, aiserr.Wrap(aiserr.KindIoError, "ReadCSV", "invalid MMSI", err)
		}
		lat, err := strconv.ParseFloat(field("Latitude"), 64)
		if err != nil {
			return nil, aiserr.Wrap(aiserr.KindIoError, "ReadCSV", "invalid latitude", err)
		}
		lon, err := strconv.ParseFloat(field("Longitude"), 64)
		if err != nil {
			return nil, aiserr.Wrap(aiserr.KindIoError, "ReadCSV", "invalid longitude", err)
		}

		rows = append(rows, Row{
			Timestamp:         ts,
			TypeOfMobile:      field("Type of mobile"),
			MMSI:              mmsi,
			Latitude:          lat,
			Longitude:         lon,
			NavStatus:         ParseNavStatus(field("Navigational status")),
			ROT:               optionalFloat(field("ROT")),
			SOG:               optionalFloat(field("SOG")),
			COG:               optionalFloat(field("COG")),
			Heading:           optionalUint16(field("Heading")),
			IMO:               field("IMO"),
			Callsign:          field("Callsign"),
			Name:              field("Name"),
			ShipType:          field("Ship type"),
			CargoType:         field("Cargo type"),
			Width:             optionalUint16(field("Width")),
			Length:            optionalUint16(field("Length")),
			PositionFixDevice: field("Type of position fixing device"),
			Draught:           optionalFloat(field("Draught")),
			Destination:       field("Destination"),
			DataSourceType:    field("Data source type"),
		})
	}
	return rows, nil
}

func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func optionalUint16(s string) *uint16 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return nil
	}
	u := uint16(v)
	return &u
}

// GroupByMMSI partitions rows by MMSI and builds one chronologically
// ordered WGS84 LineStringM per vessel, with m set to the row's Unix
// timestamp in seconds. Vessels whose row count is 0 or 1 (cannot form a
// valid LineStringM) are omitted.
func GroupByMMSI(rows []Row) (map[uint64]geom.LineStringM, error) {
	byMMSI := make(map[uint64][]Row)
	for _, r := range rows {
		byMMSI[r.MMSI] = append(byMMSI[r.MMSI], r)
	}

	out := make(map[uint64]geom.LineStringM, len(byMMSI))
	for mmsi, group := range byMMSI {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		if len(group) < 2 {
			continue
		}

		coords := make([]geom.CoordM, 0, len(group))
		lastM := math.Inf(-1)
		for _, r := range group {
			m := float64(r.Timestamp.Unix())
			if m < lastM {
				continue // out-of-order timestamp after sort; drop defensively (duplicates are kept)
			}
			c, err := geom.NewCoordM(r.Longitude, r.Latitude, m, geom.WGS84)
			if err != nil {
				return nil, err
			}
			coords = append(coords, c)
			lastM = m
		}
		if len(coords) < 2 {
			continue
		}
		ls, err := geom.From(coords)
		if err != nil {
			return nil, err
		}
		out[mmsi] = ls
	}
	return out, nil
}
