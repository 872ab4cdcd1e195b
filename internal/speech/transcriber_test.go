package speech

import (
	"context"
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecognizeRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req, err := buildRecognizeRequest(Request{Audio: []byte{1, 2, 3}})
		require.NoError(t, err)
		assert.Equal(t, speechpb.RecognitionConfig_LINEAR16, req.Config.Encoding)
		assert.Equal(t, int32(16000), req.Config.SampleRateHertz)
		assert.Equal(t, "en-US", req.Config.LanguageCode)
		assert.Equal(t, []byte{1, 2, 3}, req.Audio.GetContent())
	})

	t.Run("explicit encoding", func(t *testing.T) {
		req, err := buildRecognizeRequest(Request{Audio: []byte{1}, Encoding: "ogg_opus", SampleRate: 48000, LanguageCode: "fr-FR"})
		require.NoError(t, err)
		assert.Equal(t, speechpb.RecognitionConfig_OGG_OPUS, req.Config.Encoding)
		assert.Equal(t, int32(48000), req.Config.SampleRateHertz)
		assert.Equal(t, "fr-FR", req.Config.LanguageCode)
	})

	t.Run("empty audio", func(t *testing.T) {
		_, err := buildRecognizeRequest(Request{})
		assert.Error(t, err)
	})

	t.Run("unsupported encoding", func(t *testing.T) {
		_, err := buildRecognizeRequest(Request{Audio: []byte{1}, Encoding: "MP3"})
		assert.ErrorContains(t, err, "unsupported encoding")
	})
}

func TestCollectTranscript(t *testing.T) {
	resp := &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "send fifty", Confidence: 0.9}}},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "dollars", Confidence: 0.7}}},
			{},
		},
	}

	res, err := collectTranscript(resp)
	require.NoError(t, err)
	assert.Equal(t, "send fifty dollars", res.Transcript)
	assert.InDelta(t, 0.8, res.Confidence, 0.0001)

	_, err = collectTranscript(&speechpb.RecognizeResponse{})
	assert.Error(t, err)

	_, err = collectTranscript(&speechpb.RecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{{}}})
	assert.ErrorContains(t, err, "no alternatives")
}

func TestUnconfigured(t *testing.T) {
	_, err := Unconfigured().Transcribe(context.Background(), Request{Audio: []byte{1}})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
