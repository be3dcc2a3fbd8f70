package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundPromote
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays short synthesised effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates an audio manager. Sounds are generated once up front.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: enabled,
		volume:  0.5,
	}

	am.sounds[SoundMove] = synth(0.08, func(t, _ float64) float64 { return click(440, t) * 0.3 })
	am.sounds[SoundCapture] = synth(0.12, func(t, _ float64) float64 { return click(330, t) * 0.5 })
	am.sounds[SoundCheck] = synth(0.15, func(t, p float64) float64 {
		return math.Sin(2*math.Pi*880*t) * attackDecay(p) * 0.4
	})
	am.sounds[SoundPromote] = synth(0.25, func(t, p float64) float64 {
		freq := 523.25 + 261.63*p // rising sweep
		return math.Sin(2*math.Pi*freq*t) * attackDecay(p) * 0.35
	})
	am.sounds[SoundInvalid] = synth(0.1, func(t, p float64) float64 {
		wave := math.Sin(2*math.Pi*150*t) + 0.3*math.Sin(4*math.Pi*150*t)
		return wave * (1 - p) * 0.15
	})
	am.sounds[SoundGameEnd] = synth(0.4, func(t, p float64) float64 {
		sum := 0.0
		for _, f := range []float64{261.63, 329.63, 392.00} {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / 3 * fadeInOut(p) * 0.5
	})
	return am
}

// synth renders duration seconds of 16-bit stereo PCM from wave(t, progress).
func synth(duration float64, wave func(t, progress float64) float64) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		v := wave(t, t/duration)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		val := int16(v * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

// click is a decaying tone with a little noise, like wood on wood.
func click(freq, t float64) float64 {
	i := t * sampleRate
	noise := (math.Sin(i*0.3) + math.Sin(i*0.7)) * 0.3
	return (math.Sin(2*math.Pi*freq*t) + noise) * math.Exp(-t*30)
}

func attackDecay(p float64) float64 {
	if p < 0.1 {
		return p / 0.1
	}
	return 1 - (p-0.1)/0.9
}

func fadeInOut(p float64) float64 {
	switch {
	case p < 0.1:
		return p / 0.1
	case p > 0.7:
		return (1 - p) / 0.3
	}
	return 1
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
