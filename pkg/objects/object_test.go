package objects_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitcore/pkg/objects"
)

func compressed(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := objects.Compress(&buf)
	require.NoError(t, err)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestHashBytes_KnownVectors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{"hi", "hi", "32f95c0d1244a78b2be1bab8de17906fabb2c4a8"},
		{"yo", "yo", "b920295f69a539ff6e22454082c706636917554f"},
		{"hello world", "hello world\n", "3b18e512dba79e4c8300dd08aeb37f8e728b8dad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := objects.HashBytes(objects.BlobKind, []byte(tt.content))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	var first, second bytes.Buffer

	h1, err := objects.NewObjectFromBytes(objects.BlobKind, []byte("hi")).Encode(&first)
	require.NoError(t, err)
	h2, err := objects.NewObjectFromBytes(objects.BlobKind, []byte("hi")).Encode(&second)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Equal(t, "32f95c0d1244a78b2be1bab8de17906fabb2c4a8", h1.String())
}

func TestEncode_DryRunMatchesHash(t *testing.T) {
	h1, err := objects.NewObjectFromBytes(objects.CommitKind, []byte("msg")).Encode(io.Discard)
	require.NoError(t, err)

	h2, err := objects.NewObjectFromBytes(objects.CommitKind, []byte("msg")).Hash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, objects.HashBytes(objects.CommitKind, []byte("msg")), h1)
}

func TestEncode_ShortContent(t *testing.T) {
	obj := objects.NewObject(objects.BlobKind, 10, strings.NewReader("abc"))
	_, err := obj.Encode(io.Discard)
	require.Error(t, err)
	assert.True(t, objects.IsInvalidFormat(err))
}

func TestEncode_ReadsOnlyDeclaredSize(t *testing.T) {
	src := strings.NewReader("hiEXTRA")
	h, err := objects.NewObject(objects.BlobKind, 2, src).Encode(io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "32f95c0d1244a78b2be1bab8de17906fabb2c4a8", h.String())
	assert.Equal(t, 5, src.Len())
}

func TestRoundTrip(t *testing.T) {
	payloads := map[objects.ObjectKind][]byte{
		objects.BlobKind:   bytes.Repeat([]byte{0, 1, 2, 0xff}, 4096),
		objects.TreeKind:   []byte("100644 a.txt\x00aaaaaaaaaaaaaaaaaaaa"),
		objects.CommitKind: []byte("tree 4eabb0fdcc6c0bef8c6000ad9ebf816246317c20\n\nmsg\n"),
	}

	for kind, payload := range payloads {
		t.Run(kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			_, err := objects.NewObjectFromBytes(kind, payload).Encode(&buf)
			require.NoError(t, err)

			obj, err := objects.ReadObject(&buf)
			require.NoError(t, err)
			assert.Equal(t, kind, obj.Kind)
			assert.Equal(t, int64(len(payload)), obj.Size)

			got, err := obj.ReadAll()
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestReadObject_HeaderEdgeCases(t *testing.T) {
	t.Run("valid blob", func(t *testing.T) {
		obj, err := objects.ReadObject(bytes.NewReader(compressed(t, []byte("blob 2\x00hi"))))
		require.NoError(t, err)
		assert.Equal(t, objects.BlobKind, obj.Kind)
		assert.Equal(t, int64(2), obj.Size)

		got, err := obj.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, "hi", string(got))
	})

	t.Run("trailing garbage is not read", func(t *testing.T) {
		obj, err := objects.ReadObject(bytes.NewReader(compressed(t, []byte("blob 2\x00hiGARBAGE"))))
		require.NoError(t, err)

		got, err := obj.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, "hi", string(got))
	})

	bad := []struct {
		name string
		raw  string
	}{
		{"missing space", "blobX\x00"},
		{"unknown kind", "tag 2\x00hi"},
		{"non-numeric size", "blob two\x00hi"},
		{"negative size", "blob -1\x00"},
		{"empty size", "blob \x00"},
		{"plus sign", "blob +2\x00hi"},
		{"overflowing size", "blob 25000000000000000000\x00"},
		{"size beyond int64", "blob 9223372036854775808\x00"},
		{"truncated header", "blob 2"},
		{"invalid utf-8", "bl\xffob 2\x00hi"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := objects.ReadObject(bytes.NewReader(compressed(t, []byte(tt.raw))))
			require.Error(t, err)
			assert.True(t, objects.IsInvalidFormat(err), "got %v", err)
		})
	}
}

func TestReadObject_ShortPayload(t *testing.T) {
	obj, err := objects.ReadObject(bytes.NewReader(compressed(t, []byte("blob 5\x00hi"))))
	require.NoError(t, err)

	_, err = obj.ReadAll()
	require.Error(t, err)
	assert.True(t, objects.IsInvalidFormat(err))
}

func TestReadObject_CorruptStream(t *testing.T) {
	_, err := objects.ReadObject(strings.NewReader("definitely not zlib"))
	require.Error(t, err)
	assert.True(t, objects.IsIO(err))
}

func TestReadHeader(t *testing.T) {
	kind, size, err := objects.ReadHeader(bytes.NewReader(compressed(t, []byte("tree 40\x00"))))
	require.NoError(t, err)
	assert.Equal(t, objects.TreeKind, kind)
	assert.Equal(t, int64(40), size)
}

func TestVerify(t *testing.T) {
	raw := compressed(t, []byte("blob 2\x00hi"))

	obj, err := objects.ReadObject(bytes.NewReader(raw))
	require.NoError(t, err)
	obj.Verify(objects.MustParseObjectHash("32f95c0d1244a78b2be1bab8de17906fabb2c4a8"))
	_, err = obj.ReadAll()
	require.NoError(t, err)

	obj, err = objects.ReadObject(bytes.NewReader(raw))
	require.NoError(t, err)
	obj.Verify(objects.MustParseObjectHash("b920295f69a539ff6e22454082c706636917554f"))
	_, err = obj.ReadAll()
	require.Error(t, err)
	assert.True(t, objects.IsInvalidFormat(err))
}

func TestParseObjectKind(t *testing.T) {
	for _, tok := range []string{"blob", "tree", "commit"} {
		k, err := objects.ParseObjectKind(tok)
		require.NoError(t, err)
		assert.Equal(t, tok, k.String())
	}

	_, err := objects.ParseObjectKind("Blob")
	assert.True(t, objects.IsInvalidFormat(err))
}

func TestParseHeader_SizeRange(t *testing.T) {
	kind, size, err := objects.ParseHeader([]byte("blob 9223372036854775807"))
	require.NoError(t, err)
	assert.Equal(t, objects.BlobKind, kind)
	assert.Equal(t, int64(9223372036854775807), size)

	_, _, err = objects.ParseHeader([]byte("blob 25000000000000000000"))
	require.Error(t, err)
	assert.True(t, objects.IsInvalidFormat(err), "got %v", err)
}
