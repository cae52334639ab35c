package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blockscript/blocks/parse"
	"github.com/vk/blockscript/internal/codec"
	"github.com/vk/blockscript/internal/registry"
	"github.com/vk/blockscript/internal/script"
	"github.com/vk/blockscript/internal/setting"
	"github.com/vk/blockscript/internal/testutil"
)

const parseScript = `BLOCK:Parse
MODE:LR
input = "hello how are you"
leftDelim = "hello"
rightDelim = "you"
=> VAR @parsed
`

func TestDecode_SingleParseBlock(t *testing.T) {
	reg := testutil.NewRegistry(t)

	blocks, err := codec.Decode(parseScript, reg)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	pb, ok := blocks[0].(*parse.Block)
	require.True(t, ok)
	assert.Equal(t, parse.ModeLR, pb.Mode)
	assert.False(t, pb.Recursive)
	assert.Equal(t, "parsed", pb.Variable())
	assert.False(t, pb.IsCapture)

	input, ok := pb.Setting("input")
	require.True(t, ok)
	assert.True(t, input.Equal(setting.FixedString("hello how are you")))

	left, ok := pb.Setting("leftDelim")
	require.True(t, ok)
	assert.True(t, left.Equal(setting.FixedString("hello")))
}

func TestDecode_OrderPreserved(t *testing.T) {
	reg := testutil.NewRegistry(t)
	text := `BLOCK:Request
METHOD:GET
url = "https://example.com"

BLOCK:Parse
MODE:LR
leftDelim = "<title>"
rightDelim = "</title>"
=> VAR @title

BLOCK:KeyCheck
KEYCHAIN:Success:OR
KEY Contains "Welcome"
`
	blocks, err := codec.Decode(text, reg)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, "Request", blocks[0].KindID())
	assert.Equal(t, "Parse", blocks[1].KindID())
	assert.Equal(t, "KeyCheck", blocks[2].KindID())
}

func TestDecode_UnknownKind(t *testing.T) {
	reg := testutil.NewRegistry(t)
	text := "\nBLOCK:Teleport\nMODE:LR\n"

	_, err := codec.Decode(text, reg)
	require.Error(t, err)
	var unknown *registry.UnknownKindError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Teleport", unknown.KindID)
	assert.Equal(t, 2, unknown.Line)
}

func TestDecode_UnknownModeLineTagged(t *testing.T) {
	reg := testutil.NewRegistry(t)
	text := `BLOCK:Parse
MODE:Foo
=> VAR @x
`
	_, err := codec.Decode(text, reg)
	require.Error(t, err)
	var parseErr *script.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, "MODE:Foo", parseErr.Excerpt)
}

func TestDecode_ExcerptTruncated(t *testing.T) {
	reg := testutil.NewRegistry(t)
	long := "MODE:FooFooFooFooFooFooFooFooFooFooFooFooFooFooFooFooFooFooFoo"
	text := "BLOCK:Parse\n" + long + "\n=> VAR @x\n"

	_, err := codec.Decode(text, reg)
	require.Error(t, err)
	var parseErr *script.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Len(t, parseErr.Excerpt, 50)
	assert.Equal(t, long[:50], parseErr.Excerpt)
}

func TestDecode_GarbageBeforeFirstBlock(t *testing.T) {
	reg := testutil.NewRegistry(t)

	_, err := codec.Decode("hello there\n", reg)
	require.Error(t, err)
	var parseErr *script.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, parseErr.Line)
}

func TestDecode_HeaderLines(t *testing.T) {
	reg := testutil.NewRegistry(t)
	text := `BLOCK:Parse
DISABLED
LABEL:Grab the title
MODE:Regex
pattern = "<title>(.*)</title>"
outputFormat = "[1]"
=> CAP @title
`
	blocks, err := codec.Decode(text, reg)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	pb := blocks[0].(*parse.Block)
	assert.True(t, pb.Disabled())
	assert.Equal(t, "Grab the title", pb.Label())
	assert.Equal(t, parse.ModeRegex, pb.Mode)
	assert.True(t, pb.IsCapture)
	assert.Equal(t, "title", pb.Variable())
}

func TestEncode_RoundTrip(t *testing.T) {
	reg := testutil.NewRegistry(t)
	text := `BLOCK:Request
METHOD:POST
url = "https://example.com/login"
postData = $"user=<USER>&pass=<PASS>"
headers = {"Accept": "*/*"}

BLOCK:Parse
DISABLED
LABEL:Session token
RECURSIVE
MODE:Json
jToken = "session.token"
=> CAP @globals.token

BLOCK:Function
FUNCTION:SHA256
input = @parsed
=> VAR @hashed

BLOCK:KeyCheck
KEYCHAIN:Success:OR
KEY Contains "Welcome"
KEYCHAIN:Failure:AND
KEY DoesNotContain "Welcome"
KEY MatchesRegex "error [0-9]+"

BLOCK:Code
BEGIN RAW
var custom = 1;

custom = custom + 1;
END RAW
`
	first, err := codec.Decode(text, reg)
	require.NoError(t, err)

	encoded, err := codec.Encode(first)
	require.NoError(t, err)

	second, err := codec.Decode(encoded, reg)
	require.NoError(t, err)

	// Field-for-field equality of the instance sequences, via a second
	// encode: equal sequences must render identically.
	reEncoded, err := codec.Encode(second)
	require.NoError(t, err)
	assert.Equal(t, encoded, reEncoded)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].KindID(), second[i].KindID())
		assert.Equal(t, first[i].Label(), second[i].Label())
		assert.Equal(t, first[i].Disabled(), second[i].Disabled())
	}
}

func TestEncode_OrphanSettingFailsWholeScript(t *testing.T) {
	reg := testutil.NewRegistry(t)

	blocks, err := codec.Decode(parseScript, reg)
	require.NoError(t, err)

	pb := blocks[0].(*parse.Block)
	pb.SetValue("bogus", setting.FixedString("x"))

	_, err = codec.Encode(blocks)
	require.Error(t, err)
	var invalid *script.InvalidSettingError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "bogus", invalid.Name)
}
