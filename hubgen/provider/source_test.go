package provider

import (
	"context"
	"strings"
	"testing"

	"github.com/broady/hub/hubgen/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatPkg = "github.com/broady/hub/hubgen/provider/testdata/chat"

func loadChat(t *testing.T) *ir.Metadata {
	t.Helper()
	md, err := (&SourceProvider{}).Load(context.Background(), SourceOptions{Pattern: chatPkg})
	require.NoError(t, err)
	require.NotNil(t, md)
	return md
}

func opNames(ops []ir.OperationDescriptor) []string {
	var names []string
	for _, op := range ops {
		names = append(names, op.Name)
	}
	return names
}

func propNames(c *ir.ClassDescriptor) []string {
	var names []string
	for _, p := range c.Properties {
		names = append(names, p.Name)
	}
	return names
}

func TestSourceProvider_Package(t *testing.T) {
	md := loadChat(t)
	assert.Equal(t, chatPkg, md.Package.Path)
	assert.Equal(t, "chat", md.Package.Name)
	assert.True(t, strings.HasSuffix(md.Package.Dir, "chat"), md.Package.Dir)
}

func TestSourceProvider_Contracts(t *testing.T) {
	md := loadChat(t)

	require.Len(t, md.Contracts, 2)
	assert.Equal(t, "AdminHub", md.Contracts[0].Name)
	assert.Equal(t, "ChatHub", md.Contracts[1].Name)

	chat := md.FindContract("ChatHub")
	require.NotNil(t, chat)
	assert.Equal(t, []string{"Ping", "Post", "History"}, opNames(chat.Operations))
	assert.True(t, strings.HasSuffix(chat.Source.File, "chat.go"))

	ping := chat.Operations[0]
	assert.Equal(t, ir.ServerReceived, ping.Direction)
	assert.True(t, ping.AsyncVoid)
	assert.Equal(t, "error", ping.Result)
	require.Len(t, ping.Parameters, 2)
	assert.Equal(t, "ctx", ping.Parameters[0].Name)
	assert.Equal(t, ir.KindContext, ping.Parameters[0].Type.Kind())
	assert.Equal(t, "sessionID", ping.Parameters[1].Name)
	assert.Equal(t, ir.String(), ping.Parameters[1].Type)
	assert.NotZero(t, ping.Source.Line)

	history := chat.Operations[2]
	assert.False(t, history.AsyncVoid)
	assert.Equal(t, "([]Message, error)", history.Result)
}

func TestSourceProvider_ClientAPIs(t *testing.T) {
	md := loadChat(t)

	require.Len(t, md.ClientAPIs, 1)
	client := md.FindClientAPI("ChatClient")
	require.NotNil(t, client)
	assert.Equal(t, []string{"Pong", "Received"}, opNames(client.Operations))

	pong := client.Operations[0]
	assert.Equal(t, ir.ClientInvoked, pong.Direction)
	assert.True(t, pong.AsyncVoid)
	require.Len(t, pong.Parameters, 2)
	assert.Equal(t, ir.KindContext, pong.Parameters[0].Type.Kind())
	assert.Equal(t, "hub.Caller", pong.Parameters[0].Type.TypeName())

	received := client.Operations[1]
	require.Len(t, received.Parameters, 3)
	msgs, ok := received.Parameters[1].Type.(*ir.ArrayDescriptor)
	require.True(t, ok, "msgs is %T", received.Parameters[1].Type)
	assert.Equal(t, "Message", msgs.Element.TypeName())
	assert.Equal(t, ir.Primitive(ir.PrimitiveTime), received.Parameters[2].Type)
}

func TestSourceProvider_InterfaceClient(t *testing.T) {
	md, err := (&SourceProvider{}).Load(context.Background(), SourceOptions{
		Pattern: "github.com/broady/hub/hubgen/provider/testdata/ifaceclient",
	})
	require.NoError(t, err)

	client := md.FindClientAPI("EchoClient")
	require.NotNil(t, client)
	assert.Equal(t, []string{"Echoed", "Notify"}, opNames(client.Operations))

	for _, op := range client.Operations {
		assert.Equal(t, ir.ClientInvoked, op.Direction, op.Name)
		assert.True(t, op.AsyncVoid, op.Name)
		require.Len(t, op.Parameters, 2, op.Name)
		assert.Equal(t, ir.KindContext, op.Parameters[0].Type.Kind(), op.Name)
	}
	assert.Equal(t, ir.String(), client.Operations[0].Parameters[1].Type)
}

func TestSourceProvider_Classes(t *testing.T) {
	md := loadChat(t)
	post := md.FindContract("ChatHub").Operations[1]

	room, ok := post.Parameters[1].Type.(*ir.ClassDescriptor)
	require.True(t, ok, "room is %T", post.Parameters[1].Type)
	assert.Equal(t, "Room", room.Name)
	assert.Equal(t, chatPkg, room.Package)
	assert.Equal(t, []string{"name", "members", "Level"}, propNames(room))
	assert.Equal(t, ir.Array(ir.String()), room.Properties[1].Type)

	msg, ok := post.Parameters[2].Type.(*ir.ClassDescriptor)
	require.True(t, ok)
	assert.Equal(t, []string{"Author", "Text", "Sent", "TTL", "Payload", "Reply", "Extra"}, propNames(msg))

	types := make(map[string]ir.TypeDescriptor)
	for _, p := range msg.Properties {
		types[p.Name] = p.Type
	}
	assert.Equal(t, ir.Primitive(ir.PrimitiveTime), types["Sent"])
	assert.Equal(t, ir.Primitive(ir.PrimitiveDuration), types["TTL"])
	assert.Equal(t, ir.Primitive(ir.PrimitiveBytes), types["Payload"])
	assert.Equal(t, ir.Primitive(ir.PrimitiveAny), types["Extra"])
	assert.Same(t, msg, types["Reply"], "recursive reference should reuse the descriptor")

	// Shared types map to one descriptor across operations.
	received := md.FindClientAPI("ChatClient").Operations[1]
	assert.Same(t, msg, received.Parameters[1].Type.(*ir.ArrayDescriptor).Element)
}

func TestSourceProvider_Enums(t *testing.T) {
	md := loadChat(t)

	room := md.FindContract("ChatHub").Operations[1].Parameters[1].Type.(*ir.ClassDescriptor)
	level, ok := room.Properties[2].Type.(*ir.EnumDescriptor)
	require.True(t, ok, "Level is %T", room.Properties[2].Type)
	assert.Equal(t, []string{"LevelLow", "LevelMid", "LevelHigh"}, level.Members)

	kick := md.FindContract("AdminHub").Operations[0]
	mood, ok := kick.Parameters[1].Type.(*ir.EnumDescriptor)
	require.True(t, ok)
	assert.Equal(t, "_", kick.Parameters[1].Name)
	assert.Equal(t, []string{"MoodHappy", "MoodSad"}, mood.Members)
}

func TestSourceProvider_Unsupported(t *testing.T) {
	md := loadChat(t)
	kick := md.FindContract("AdminHub").Operations[0]

	tags := kick.Parameters[2].Type
	require.Equal(t, ir.KindUnsupported, tags.Kind())
	assert.Equal(t, "map[string]string", tags.TypeName())
	assert.Contains(t, tags.(*ir.UnsupportedDescriptor).Reason, "map")
}

func TestSourceProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    SourceOptions
		wantErr string
	}{
		{
			name:    "no pattern",
			opts:    SourceOptions{},
			wantErr: "no package specified",
		},
		{
			name:    "server directive outside contract",
			opts:    SourceOptions{Pattern: "github.com/broady/hub/hubgen/provider/testdata/invalid"},
			wantErr: "Plain does not embed hub.Hub",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := (&SourceProvider{}).Load(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Nil(t, md)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJSONName(t *testing.T) {
	tests := []struct {
		tag      string
		wantName string
		wantSkip bool
	}{
		{``, "", false},
		{`json:"id"`, "id", false},
		{`json:"id,omitempty"`, "id", false},
		{`json:",omitempty"`, "", false},
		{`json:"-"`, "", true},
		{`json:"-,"`, "-", false},
		{`yaml:"x" json:"y"`, "y", false},
	}
	for _, tt := range tests {
		name, skip := jsonName(tt.tag)
		assert.Equal(t, tt.wantName, name, "tag %q", tt.tag)
		assert.Equal(t, tt.wantSkip, skip, "tag %q", tt.tag)
	}
}
