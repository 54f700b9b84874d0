package bmpkit

import (
	"testing"
)

func BenchmarkFontCache(b *testing.B) {
	paths := writeFonts(b, 1)
	data := readTestFont(b)

	b.Run("LoadWithoutCache", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := LoadFont(paths[0]); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("LoadWithCache", func(b *testing.B) {
		cache := NewFontCache(10)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := cache.LoadFont(paths[0]); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("ParseBytesWithoutCache", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := ParseFontBytes(data); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("ParseBytesWithCache", func(b *testing.B) {
		cache := NewFontCache(10)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := cache.ParseFont(data); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkCacheConcurrent(b *testing.B) {
	paths := writeFonts(b, 4)
	cache := NewFontCache(4)

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, err := cache.LoadFont(paths[i%len(paths)]); err != nil {
				b.Error(err)
				return
			}
			i++
		}
	})
}

func BenchmarkLRUEviction(b *testing.B) {
	paths := writeFonts(b, 8)
	cache := NewFontCache(3)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := cache.LoadFont(paths[i%len(paths)]); err != nil {
			b.Fatal(err)
		}
	}
}
