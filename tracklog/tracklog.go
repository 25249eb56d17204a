// Package tracklog exports positions from decoded tracker messages as a GPX
// track.
package tracklog

import (
	"fmt"
	"io"
	"os"

	"github.com/mdzio/go-logging"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/mdzio/go-agtracker/sbd"
)

var log = logging.Get("tracklog")

// TrackPoint converts one decoded message to a GPX track point. The message
// must contain the fields LAT, LON, ALT and DATETIME. If PRESS is present,
// the pressure is attached as a comment.
func TrackPoint(m *sbd.Message) (*gpx.GPXPoint, error) {
	q := sbd.Q(m)
	lat := q.Float64("LAT")
	lon := q.Float64("LON")
	alt := q.Float64("ALT")
	ts := q.Time("DATETIME")
	if err := q.Err(); err != nil {
		return nil, err
	}
	p := &gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  lat,
			Longitude: lon,
			Elevation: *gpx.NewNullableFloat64(alt),
		},
		Timestamp: ts,
	}
	if q.Has("PRESS") {
		p.Comment = fmt.Sprintf("%d hPa", q.Int("PRESS"))
		if err := q.Err(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Write renders the track points as one GPX track with a single segment.
func Write(w io.Writer, points []*gpx.GPXPoint) error {
	doc := &gpx.GPX{
		Creator: "AGT Message Translator",
		Name:    "Artemis Global Tracker",
	}
	seg := gpx.GPXTrackSegment{}
	for _, p := range points {
		seg.AppendPoint(p)
	}
	trk := gpx.GPXTrack{}
	trk.AppendSegment(&seg)
	doc.AppendTrack(&trk)

	data, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("rendering of GPX document failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the track points to a GPX file.
func WriteFile(path string, points []*gpx.GPXPoint) error {
	log.Debugf("Writing %d track points to %s", len(points), path)
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fd.Close()
	return Write(fd, points)
}
