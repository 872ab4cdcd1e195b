// Package speech turns recorded audio into text for the voice endpoint.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no speech client could be created.
var ErrNotConfigured = errors.New("speech: transcription not configured")

const (
	DefaultEncoding     = "LINEAR16"
	DefaultSampleRate   = 16000
	DefaultLanguageCode = "en-US"
)

type Request struct {
	Audio        []byte
	Encoding     string
	SampleRate   int
	LanguageCode string
}

type Result struct {
	Transcript string
	Confidence float32
}

type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (Result, error)
}

// GoogleTranscriber uses Google Cloud Speech-to-Text synchronous recognition.
type GoogleTranscriber struct {
	client *speech.Client
	logger *zap.Logger
}

// NewTranscriber connects to Google Speech with application default
// credentials. When the client cannot be built the returned transcriber
// fails every call with ErrNotConfigured.
func NewTranscriber(ctx context.Context, logger *zap.Logger) Transcriber {
	client, err := speech.NewClient(ctx)
	if err != nil {
		logger.Warn("failed to initialize speech client", zap.Error(err))
		return unconfigured{}
	}
	return &GoogleTranscriber{client: client, logger: logger.Named("speech")}
}

type unconfigured struct{}

func (unconfigured) Transcribe(context.Context, Request) (Result, error) {
	return Result{}, ErrNotConfigured
}

// Unconfigured returns a transcriber that always fails with ErrNotConfigured.
func Unconfigured() Transcriber {
	return unconfigured{}
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, req Request) (Result, error) {
	speechReq, err := buildRecognizeRequest(req)
	if err != nil {
		return Result{}, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := t.client.Recognize(timeoutCtx, speechReq)
	if err != nil {
		return Result{}, fmt.Errorf("recognition failed: %w", err)
	}
	return collectTranscript(resp)
}

func (t *GoogleTranscriber) Close() error {
	return t.client.Close()
}

func buildRecognizeRequest(req Request) (*speechpb.RecognizeRequest, error) {
	if len(req.Audio) == 0 {
		return nil, errors.New("audio data is empty")
	}
	if req.Encoding == "" {
		req.Encoding = DefaultEncoding
	}
	if req.SampleRate == 0 {
		req.SampleRate = DefaultSampleRate
	}
	if req.LanguageCode == "" {
		req.LanguageCode = DefaultLanguageCode
	}

	encoding, err := parseEncoding(req.Encoding)
	if err != nil {
		return nil, err
	}

	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encoding,
			SampleRateHertz:            int32(req.SampleRate),
			LanguageCode:               req.LanguageCode,
			EnableAutomaticPunctuation: true,
			Model:                      "latest_short",
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: req.Audio,
			},
		},
	}, nil
}

// collectTranscript joins the top alternative of every result and averages
// their confidence.
func collectTranscript(resp *speechpb.RecognizeResponse) (Result, error) {
	if len(resp.GetResults()) == 0 {
		return Result{}, errors.New("no transcription results")
	}

	var transcript strings.Builder
	var totalConfidence float32
	var count int

	for _, result := range resp.GetResults() {
		if len(result.Alternatives) > 0 {
			alternative := result.Alternatives[0]
			transcript.WriteString(alternative.Transcript)
			transcript.WriteString(" ")
			totalConfidence += alternative.Confidence
			count++
		}
	}

	if count == 0 {
		return Result{}, errors.New("no alternatives in results")
	}

	return Result{
		Transcript: strings.TrimSpace(transcript.String()),
		Confidence: totalConfidence / float32(count),
	}, nil
}

func parseEncoding(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch strings.ToUpper(encoding) {
	case "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW, nil
	case "AMR":
		return speechpb.RecognitionConfig_AMR, nil
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
