//go:build arenadebug

package arena

// poisonByte fills reclaimed buffer space in debug builds.
const poisonByte = 0xdd

func poison(b []byte) {
	for i := range b {
		b[i] = poisonByte
	}
}
