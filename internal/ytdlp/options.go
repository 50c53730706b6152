// Package ytdlp translates download requests into yt-dlp invocations and
// parses what yt-dlp writes back.
package ytdlp

import (
	"path/filepath"
	"strconv"

	"mediagrab/internal/model"
)

// Post-processor keys understood by yt-dlp.
const (
	PPVideoConvertor = "FFmpegVideoConvertor"
	PPExtractAudio   = "FFmpegExtractAudio"
)

// DefaultMergeFormat is the container yt-dlp merges separate video and
// audio streams into when nothing else is requested.
const DefaultMergeFormat = "mp4"

// Format selectors.
const (
	SelectBestVideo  = "bestvideo+bestaudio/best"
	SelectWorstVideo = "worstvideo+worstaudio/worst"
	SelectBestAudio  = "bestaudio/best"
)

// bitrateCodecs take a preferred quality on audio extraction.
var bitrateCodecs = map[string]bool{"mp3": true, "aac": true, "ogg": true}

// PostProcessor is one post-processing directive passed to yt-dlp.
type PostProcessor struct {
	Key              string
	PreferredFormat  string // FFmpegVideoConvertor
	PreferredCodec   string // FFmpegExtractAudio
	PreferredQuality string // FFmpegExtractAudio, kbps; empty when the codec has none
}

// Options mirrors the subset of the yt-dlp option dictionary this program sets.
type Options struct {
	OutputTemplate    string
	NoPlaylist        bool
	IgnoreErrors      bool
	WriteInfoJSON     bool
	WriteDescription  bool
	WriteSubtitles    bool
	Format            string
	MergeOutputFormat string
	PostProcessors    []PostProcessor

	DownloadArchive string // optional --download-archive file
	FFmpegLocation  string // optional --ffmpeg-location
}

// BuildOptions builds the engine options for a validated request.
// req.Format must already be in the allow-list for the mode.
func BuildOptions(req model.Request, q model.Quality) Options {
	o := Options{
		OutputTemplate: filepath.Join(req.OutFolder, req.Template),
		NoPlaylist:     false,
		IgnoreErrors:   true,
	}

	if req.IsVideo {
		o.Format = VideoSelector(q)
		o.MergeOutputFormat = req.Format
		if req.Format != DefaultMergeFormat {
			o.PostProcessors = append(o.PostProcessors, PostProcessor{
				Key:             PPVideoConvertor,
				PreferredFormat: req.Format,
			})
		}
		return o
	}

	pp := PostProcessor{Key: PPExtractAudio, PreferredCodec: req.Format}
	if bitrateCodecs[req.Format] {
		pp.PreferredQuality = strconv.Itoa(q.AudioKbps)
	}
	o.Format = SelectBestAudio
	o.PostProcessors = append(o.PostProcessors, pp)
	return o
}

// VideoSelector returns the format selector for a video quality.
func VideoSelector(q model.Quality) string {
	switch q.Video {
	case "best", "":
		return SelectBestVideo
	case "worst":
		return SelectWorstVideo
	}
	h := q.Height()
	if h == "" {
		return SelectBestVideo
	}
	return "bestvideo[height<=" + h + "]+bestaudio/best[height<=" + h + "]"
}

// ProbeArgs returns the arguments of the metadata-only invocation.
func (o Options) ProbeArgs(url string) []string {
	args := []string{"-J", "--flat-playlist"}
	args = append(args, o.playlistArgs()...)
	return append(args, "--", url)
}

// TransferArgs returns the arguments of the download invocation. Progress
// and finished items are printed in the line formats ParseLine understands.
func (o Options) TransferArgs(url string) []string {
	args := []string{"-o", o.OutputTemplate}
	args = append(args, o.playlistArgs()...)
	if !o.WriteInfoJSON {
		args = append(args, "--no-write-info-json")
	}
	if !o.WriteDescription {
		args = append(args, "--no-write-description")
	}
	if !o.WriteSubtitles {
		args = append(args, "--no-write-subs")
	}
	if o.Format != "" {
		args = append(args, "-f", o.Format)
	}
	if o.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", o.MergeOutputFormat)
	}
	for _, pp := range o.PostProcessors {
		args = append(args, pp.args()...)
	}
	if o.DownloadArchive != "" {
		args = append(args, "--download-archive", o.DownloadArchive)
	}
	if o.FFmpegLocation != "" {
		args = append(args, "--ffmpeg-location", o.FFmpegLocation)
	}
	args = append(args,
		"--newline",
		"--progress",
		"--progress-template", "download:"+downloadTemplate,
		"--progress-template", "postprocess:"+postprocessTemplate,
		"--print", "after_move:"+itemTemplate,
	)
	return append(args, "--", url)
}

func (o Options) playlistArgs() []string {
	var args []string
	if o.NoPlaylist {
		args = append(args, "--no-playlist")
	} else {
		args = append(args, "--yes-playlist")
	}
	if o.IgnoreErrors {
		args = append(args, "--ignore-errors")
	}
	return args
}

func (pp PostProcessor) args() []string {
	switch pp.Key {
	case PPVideoConvertor:
		return []string{"--recode-video", pp.PreferredFormat}
	case PPExtractAudio:
		args := []string{"-x", "--audio-format", pp.PreferredCodec}
		if pp.PreferredQuality != "" {
			args = append(args, "--audio-quality", pp.PreferredQuality+"K")
		}
		return args
	}
	return nil
}
