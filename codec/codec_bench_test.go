package codec

import (
	"io"
	"strconv"
	"testing"
)

func benchmarkExport() export {
	layers := make(map[string][][]int64)
	sizes := make([]int, 0, 16)
	for l := 0; l < 16; l++ {
		layer := make([][]int64, 64)
		for i := range layer {
			s := make([]int64, 12)
			for j := range s {
				s[j] = int64((i + j + l) % 12)
			}
			layer[i] = s
		}
		layers[strconv.Itoa(l)] = layer
		sizes = append(sizes, len(layer))
	}
	return export{LayerSizes: sizes, Layers: layers, Completed: true}
}

func BenchmarkCodec_Marshal(b *testing.B) {
	v := benchmarkExport()

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Marshal(v); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEncode_Compression(b *testing.B) {
	v := benchmarkExport()

	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		b.Run(comp.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if err := Encode(io.Discard, GoJSON{}, comp, v); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
