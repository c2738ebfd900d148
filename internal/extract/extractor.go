package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"mlbb-extractor/internal/decode"
	"mlbb-extractor/internal/medal"
	"mlbb-extractor/internal/ocr"
	"mlbb-extractor/internal/preprocess"
	"mlbb-extractor/internal/profile"
	"mlbb-extractor/pkg/geometry"
)

// Extractor runs the full per-screenshot pipeline: profile auto-selection,
// region cropping, preprocessing, OCR and decoding. One extractor owns one
// OCR engine and must not be used concurrently.
type Extractor struct {
	registry *profile.Registry
	engine   *ocr.Engine
	matcher  *decode.NicknameMatcher
	debug    DebugSink
	log      zerolog.Logger
}

// New wires an extractor over an already-configured registry, OCR engine and
// nickname matcher. Debugging and logging are off until enabled.
func New(registry *profile.Registry, engine *ocr.Engine, matcher *decode.NicknameMatcher) *Extractor {
	return &Extractor{
		registry: registry,
		engine:   engine,
		matcher:  matcher,
		log:      zerolog.Nop(),
	}
}

// SetDebugSink routes every intermediate region image into sink. Pass nil to
// disable.
func (e *Extractor) SetDebugSink(sink DebugSink) { e.debug = sink }

// SetLogger replaces the extractor's logger.
func (e *Extractor) SetLogger(log zerolog.Logger) { e.log = log }

// ExtractAll decodes the match summary and all five player rows of one
// screenshot. It always returns exactly five records sharing the same match
// info; individual fields degrade to their sentinel values when a region
// cannot be read.
func (e *Extractor) ExtractAll(imagePath string) ([]GameRecord, error) {
	img, err := preprocess.Load(imagePath)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	prof := e.selectProfile(img, imagePath)
	info := e.matchInfo(img, prof)

	records := make([]GameRecord, 0, profile.PlayerCount)
	for i := range prof.Players {
		stats := e.playerRow(img, &prof.Players[i], i+1)
		records = append(records, GameRecord{
			PlayerStats: stats,
			MatchInfo:   info,
			SourceImage: imagePath,
		})
	}
	return records, nil
}

// FindPlayer locates nickname among the five rows and returns that player's
// record. ErrPlayerNotFound is wrapped in the returned error when no row
// matches.
func (e *Extractor) FindPlayer(imagePath, nickname string) (*GameRecord, error) {
	img, err := preprocess.Load(imagePath)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	prof := e.selectProfile(img, imagePath)

	rows := make([]string, profile.PlayerCount)
	for i := range prof.Players {
		rows[i] = e.readNickname(img, prof.Players[i].Nickname, i+1)
	}

	idx, ok := e.matcher.FindPlayer(nickname, rows)
	if !ok {
		return nil, fmt.Errorf("%q in %s: %w", nickname, filepath.Base(imagePath), ErrPlayerNotFound)
	}
	e.log.Debug().Str("nickname", nickname).Int("position", idx+1).Msg("player row matched")

	stats := e.rowFields(img, &prof.Players[idx], idx+1)
	stats.Nickname = e.matcher.Canonical(rows[idx])
	stats.Position = idx + 1

	rec := &GameRecord{
		PlayerStats: stats,
		MatchInfo:   e.matchInfo(img, prof),
		SourceImage: imagePath,
	}
	return rec, nil
}

func (e *Extractor) selectProfile(img gocv.Mat, imagePath string) *profile.Profile {
	name := e.registry.AutoSelect(img.Cols(), img.Rows())
	e.log.Debug().
		Str("image", filepath.Base(imagePath)).
		Int("width", img.Cols()).
		Int("height", img.Rows()).
		Str("profile", name).
		Msg("profile selected")
	return e.registry.Active()
}

func (e *Extractor) matchInfo(img gocv.Mat, prof *profile.Profile) decode.MatchInfo {
	result := e.readRegion(img, prof.ResultRegion,
		preprocess.Threshold, 4, ocr.SingleLine(ocr.UppercaseChars), "result")
	mine := e.readRegion(img, prof.MyTeamScoreRegion,
		preprocess.GrayscaleScaled, 3, ocr.SingleLine(ocr.DigitChars), "my_team_score")
	theirs := e.readRegion(img, prof.AdversaryScoreRegion,
		preprocess.GrayscaleScaled, 3, ocr.SingleLine(ocr.DigitChars), "adversary_score")
	duration := e.readRegion(img, prof.DurationRegion,
		preprocess.GrayscaleScaled, 2, ocr.SingleLine(ocr.DurationChars), "duration")

	return decode.MatchInfo{
		Result:             decode.ParseResult(result),
		MyTeamScore:        decode.ParseNumber(mine, 0),
		AdversaryTeamScore: decode.ParseNumber(theirs, 0),
		Duration:           decode.ParseDuration(duration),
	}
}

// playerRow reads a full row including the nickname.
func (e *Extractor) playerRow(img gocv.Mat, pr *profile.PlayerRegions, position int) PlayerStats {
	stats := e.rowFields(img, pr, position)
	raw := e.readNickname(img, pr.Nickname, position)
	stats.Nickname = e.matcher.Canonical(raw)
	stats.Position = position
	return stats
}

// rowFields reads everything in a row except the nickname.
func (e *Extractor) rowFields(img gocv.Mat, pr *profile.PlayerRegions, position int) PlayerStats {
	line := e.readStats(img, pr.Stats, position)
	return PlayerStats{
		Kills:   line.Kills,
		Deaths:  line.Deaths,
		Assists: line.Assists,
		Gold:    line.Gold,
		Medal:   e.readMedal(img, pr.Medal, position),
		Ratio:   e.readRating(img, pr.Ratio, position),
	}
}

func (e *Extractor) readNickname(img gocv.Mat, region geometry.Region, position int) string {
	label := fmt.Sprintf("p%d_nickname", position)
	text := e.readRegion(img, region, preprocess.GrayscaleScaled, 2, ocr.Block(""), label)
	return decode.CleanNickname(text)
}

// readStats runs the stats region through two preprocessing variants and
// collects word tokens so the decoder can cascade over all of them.
func (e *Extractor) readStats(img gocv.Mat, region geometry.Region, position int) decode.StatLine {
	if region.IsZero() {
		return decode.StatLine{}
	}
	crop := preprocess.Crop(img, region)
	defer crop.Close()

	gray := preprocess.Apply(crop, preprocess.GrayscaleScaled, 3)
	defer gray.Close()
	e.snapshot(fmt.Sprintf("p%d_stats_gray", position), gray)

	primary := e.recognize(gray, ocr.Block(ocr.DigitChars), position, "stats")
	words, err := e.engine.Words(gray, ocr.Block(ocr.DigitChars))
	if err != nil {
		e.log.Warn().Err(err).Int("position", position).Msg("stats word boxes failed")
	}

	inv := preprocess.Apply(crop, preprocess.Inverted, 3)
	defer inv.Close()
	e.snapshot(fmt.Sprintf("p%d_stats_inverted", position), inv)
	secondary := e.recognize(inv, ocr.Block(ocr.DigitChars), position, "stats_inverted")

	return decode.ParseStats(primary, secondary, words)
}

// readRating tries the high-contrast threshold pass first and falls back to
// a larger grayscale pass when it decodes to nothing.
func (e *Extractor) readRating(img gocv.Mat, region geometry.Region, position int) float64 {
	text := e.readRegion(img, region, preprocess.Threshold, 4,
		ocr.SingleWord(ocr.RatingChars), fmt.Sprintf("p%d_ratio", position))
	if r := decode.ParseRating(text, 0); r > 0 {
		return r
	}
	text = e.readRegion(img, region, preprocess.GrayscaleScaled, 6,
		ocr.SingleWord(ocr.RatingChars), fmt.Sprintf("p%d_ratio_retry", position))
	return decode.ParseRating(text, 0)
}

func (e *Extractor) readMedal(img gocv.Mat, region geometry.Region, position int) medal.Type {
	if region.IsZero() {
		return medal.None
	}
	crop := preprocess.Crop(img, region)
	defer crop.Close()
	if crop.Empty() {
		return medal.None
	}
	e.snapshot(fmt.Sprintf("p%d_medal", position), crop)

	src, err := crop.ToImage()
	if err != nil {
		e.log.Warn().Err(err).Int("position", position).Msg("medal crop conversion failed")
		return medal.None
	}
	return medal.Classify(src)
}

// readRegion crops, preprocesses and OCRs a single region. Unreadable
// regions come back as the empty string so decoders can apply their
// sentinels.
func (e *Extractor) readRegion(img gocv.Mat, region geometry.Region, strategy preprocess.Strategy, scale float64, opts ocr.Options, label string) string {
	if region.IsZero() {
		return ""
	}
	crop := preprocess.Crop(img, region)
	defer crop.Close()
	if crop.Empty() {
		return ""
	}
	proc := preprocess.Apply(crop, strategy, scale)
	defer proc.Close()
	e.snapshot(label, proc)

	text, err := e.engine.Recognize(proc, opts)
	if err != nil {
		e.log.Warn().Err(err).Str("region", label).Msg("ocr failed")
		return ""
	}
	return strings.TrimSpace(text)
}

func (e *Extractor) recognize(img gocv.Mat, opts ocr.Options, position int, field string) string {
	text, err := e.engine.Recognize(img, opts)
	if err != nil {
		e.log.Warn().Err(err).Int("position", position).Str("field", field).Msg("ocr failed")
		return ""
	}
	return strings.TrimSpace(text)
}

func (e *Extractor) snapshot(label string, img gocv.Mat) {
	if e.debug == nil {
		return
	}
	if err := e.debug.Save(label, img); err != nil {
		e.log.Warn().Err(err).Str("label", label).Msg("debug snapshot failed")
	}
}
