package codec

import "testing"

type benchEvent struct {
	Name    string  `json:"name"`
	Seconds float64 `json:"seconds"`
}

type benchReport struct {
	Program string            `json:"program"`
	Size    int               `json:"size"`
	Dims    [3]int            `json:"dims"`
	Events  []benchEvent      `json:"events"`
	Labels  map[string]string `json:"labels"`
}

func newBenchReport() benchReport {
	return benchReport{
		Program: "Gradient",
		Size:    1024,
		Dims:    [3]int{1024, 1024, 3},
		Events: []benchEvent{
			{Name: "Pointer", Seconds: 0.0123},
			{Name: "MappedArray", Seconds: 0.4567},
		},
		Labels: map[string]string{"impl": "unrolled", "isa": "avx2", "host": "bench"},
	}
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(MustMarshal(c, v))))

	for b.Loop() {
		if _, err := c.Marshal(v); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkCodecUnmarshal(b *testing.B, c Codec, data []byte) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v benchReport
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodec_Marshal_Report(b *testing.B) {
	r := newBenchReport()
	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, r) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, r) })
}

func BenchmarkCodec_Unmarshal_Report(b *testing.B) {
	data := MustMarshal(JSON{}, newBenchReport())
	b.Run("stdlib", func(b *testing.B) { benchmarkCodecUnmarshal(b, JSON{}, data) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecUnmarshal(b, GoJSON{}, data) })
}
