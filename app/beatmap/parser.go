package beatmap

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/osukit/diffcalc/app/beatmap/objects"
)

const (
	circleFlag  = 1 << 0
	sliderFlag  = 1 << 1
	comboFlag   = 1 << 2
	spinnerFlag = 1 << 3
	holdFlag    = 1 << 7
)

// LoadError reports a beatmap that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads and parses a .osu file from disk.
func Load(path string) (*Beatmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	bMap, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	bMap.Path = path

	return bMap, nil
}

// Parse decodes the .osu text format.
func Parse(data []byte) (*Beatmap, error) {
	sum := md5.Sum(data)

	bMap := &Beatmap{
		MD5:              hex.EncodeToString(sum[:]),
		SliderMultiplier: 1.4,
		SliderTickRate:   1,
		HPDrainRate:      5,
		CircleSize:       5,
		ApproachRate:     math.NaN(),
	}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	section := ""
	lineNum := 0
	versionSeen := false
	odSeen := false

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if !versionSeen {
			if !strings.HasPrefix(line, "osu file format v") {
				return nil, fmt.Errorf("line %d: not a valid .osu file", lineNum)
			}

			version, err := strconv.Atoi(strings.TrimPrefix(line, "osu file format v"))
			if err != nil {
				return nil, fmt.Errorf("line %d: malformed version header", lineNum)
			}

			bMap.FormatVersion = version
			versionSeen = true

			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}

		var err error

		switch section {
		case "General", "Metadata", "Difficulty":
			key, value, found := strings.Cut(line, ":")
			if !found {
				continue
			}

			err = bMap.setProperty(strings.TrimSpace(key), strings.TrimSpace(value))
			if err == nil && strings.TrimSpace(key) == "OverallDifficulty" {
				odSeen = true
			}
		case "TimingPoints":
			err = bMap.parseTimingPoint(line)
		case "HitObjects":
			err = bMap.parseHitObject(line)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !versionSeen {
		return nil, fmt.Errorf("empty beatmap file")
	}

	if !odSeen {
		bMap.OverallDifficulty = 5
	}

	// old maps predate a separate approach rate and reuse OD
	if math.IsNaN(bMap.ApproachRate) {
		bMap.ApproachRate = bMap.OverallDifficulty
	}

	if len(bMap.HitObjects) == 0 {
		return nil, fmt.Errorf("beatmap contains no hit objects")
	}

	return bMap, nil
}

func (b *Beatmap) setProperty(key, value string) error {
	var err error

	switch key {
	case "Mode":
		b.Mode, err = strconv.Atoi(value)
	case "Title":
		b.Title = value
	case "Artist":
		b.Artist = value
	case "Creator":
		b.Creator = value
	case "Version":
		b.Version = value
	case "BeatmapID":
		b.ID, err = strconv.ParseInt(value, 10, 64)
	case "BeatmapSetID":
		b.SetID, err = strconv.ParseInt(value, 10, 64)
	case "HPDrainRate":
		b.HPDrainRate, err = strconv.ParseFloat(value, 64)
	case "CircleSize":
		b.CircleSize, err = strconv.ParseFloat(value, 64)
	case "OverallDifficulty":
		b.OverallDifficulty, err = strconv.ParseFloat(value, 64)
	case "ApproachRate":
		b.ApproachRate, err = strconv.ParseFloat(value, 64)
	case "SliderMultiplier":
		b.SliderMultiplier, err = strconv.ParseFloat(value, 64)
	case "SliderTickRate":
		b.SliderTickRate, err = strconv.ParseFloat(value, 64)
	}

	if err != nil {
		return fmt.Errorf("malformed value for %s: %q", key, value)
	}

	return nil
}

func (b *Beatmap) parseTimingPoint(line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return fmt.Errorf("malformed timing point: %q", line)
	}

	time, err1 := strconv.ParseFloat(fields[0], 64)
	beatLength, err2 := strconv.ParseFloat(fields[1], 64)

	if err1 != nil || err2 != nil {
		return fmt.Errorf("malformed timing point: %q", line)
	}

	uninherited := true
	if len(fields) > 6 {
		uninherited = fields[6] != "0"
	}

	b.Timings.Add(TimingPoint{
		Time:       time,
		BeatLength: beatLength,
		Inherited:  !uninherited || beatLength < 0,
	})

	return nil
}

func (b *Beatmap) parseHitObject(line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return fmt.Errorf("malformed hit object: %q", line)
	}

	x, err1 := strconv.ParseFloat(fields[0], 64)
	y, err2 := strconv.ParseFloat(fields[1], 64)
	startTime, err3 := strconv.ParseFloat(fields[2], 64)
	objType, err4 := strconv.Atoi(fields[3])

	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return fmt.Errorf("malformed hit object: %q", line)
	}

	pos := mgl64.Vec2{x, y}
	newCombo := objType&comboFlag != 0

	switch {
	case objType&sliderFlag != 0:
		return b.parseSlider(fields, pos, startTime, newCombo)
	case objType&spinnerFlag != 0:
		if len(fields) < 6 {
			return fmt.Errorf("spinner without end time: %q", line)
		}

		endTime, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return fmt.Errorf("malformed spinner end time: %q", fields[5])
		}

		b.HitObjects = append(b.HitObjects, &objects.Spinner{
			StartTime: startTime,
			EndTime:   endTime,
			NewCombo:  newCombo,
		})
	case objType&(circleFlag|holdFlag) != 0:
		// mania hold notes contribute a single note at their head
		b.HitObjects = append(b.HitObjects, &objects.Circle{
			StartTime: startTime,
			Position:  pos,
			NewCombo:  newCombo,
		})
	default:
		return fmt.Errorf("unknown hit object type %d", objType)
	}

	return nil
}

func (b *Beatmap) parseSlider(fields []string, pos mgl64.Vec2, startTime float64, newCombo bool) error {
	if len(fields) < 8 {
		return fmt.Errorf("malformed slider: %q", strings.Join(fields, ","))
	}

	curveParts := strings.Split(fields[5], "|")

	repeats, err1 := strconv.Atoi(fields[6])
	pixelLength, err2 := strconv.ParseFloat(fields[7], 64)

	if err1 != nil || err2 != nil || repeats < 1 || pixelLength <= 0 {
		return fmt.Errorf("malformed slider: %q", strings.Join(fields, ","))
	}

	endPos := pos

	if repeats%2 == 1 && len(curveParts) > 1 {
		coords := strings.Split(curveParts[len(curveParts)-1], ":")
		if len(coords) == 2 {
			ex, errX := strconv.ParseFloat(coords[0], 64)
			ey, errY := strconv.ParseFloat(coords[1], 64)

			if errX == nil && errY == nil {
				endPos = mgl64.Vec2{ex, ey}
			}
		}
	}

	beatLength := b.Timings.BeatLengthAt(startTime)
	velocity := b.Timings.VelocityAt(startTime)

	scoringDistance := 100 * b.SliderMultiplier * velocity
	if scoringDistance <= 0 || beatLength <= 0 {
		return fmt.Errorf("slider at %.0f has invalid timing", startTime)
	}

	spanDuration := pixelLength / scoringDistance * beatLength

	tickInterval := beatLength / b.SliderTickRate
	ticksPerSpan := 0

	if tickInterval > 0 && spanDuration > tickInterval {
		ticksPerSpan = int((spanDuration - 1) / tickInterval)
	}

	b.HitObjects = append(b.HitObjects, &objects.Slider{
		StartTime:   startTime,
		EndTime:     startTime + spanDuration*float64(repeats),
		Position:    pos,
		EndPos:      endPos,
		NewCombo:    newCombo,
		RepeatCount: repeats,
		PixelLength: pixelLength,
		ScorePoints: ticksPerSpan*repeats + repeats,
	})

	return nil
}
