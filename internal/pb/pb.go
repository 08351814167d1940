// Package pb contains the Protocol Buffers messages written by `redblack --pb`.
//
// The messages are plain structs with protobuf field tags; gogo/protobuf
// marshals them through reflection.
package pb

import (
	proto "github.com/gogo/protobuf/proto"
)

// Entry is a (key, color) pair of a traversal.
type Entry struct {
	Key   int64 `protobuf:"varint,1,opt,name=key,proto3" json:"key,omitempty"`
	Black bool  `protobuf:"varint,2,opt,name=black,proto3" json:"black,omitempty"`
}

func (m *Entry) Reset()         { *m = Entry{} }
func (m *Entry) String() string { return proto.CompactTextString(m) }
func (*Entry) ProtoMessage()    {}

// Violation is a broken Red-Black property.
type Violation struct {
	Kind    string `protobuf:"bytes,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Key     int64  `protobuf:"varint,2,opt,name=key,proto3" json:"key,omitempty"`
	Message string `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *Violation) Reset()         { *m = Violation{} }
func (m *Violation) String() string { return proto.CompactTextString(m) }
func (*Violation) ProtoMessage()    {}

// TreeReport is the snapshot of a tree.
type TreeReport struct {
	Mode        string       `protobuf:"bytes,1,opt,name=mode,proto3" json:"mode,omitempty"`
	Size        int32        `protobuf:"varint,2,opt,name=size,proto3" json:"size,omitempty"`
	BlackHeight int32        `protobuf:"varint,3,opt,name=black_height,json=blackHeight,proto3" json:"black_height,omitempty"`
	Inorder     []*Entry     `protobuf:"bytes,4,rep,name=inorder,proto3" json:"inorder,omitempty"`
	Preorder    []*Entry     `protobuf:"bytes,5,rep,name=preorder,proto3" json:"preorder,omitempty"`
	Postorder   []*Entry     `protobuf:"bytes,6,rep,name=postorder,proto3" json:"postorder,omitempty"`
	Pending     []int64      `protobuf:"varint,7,rep,packed,name=pending,proto3" json:"pending,omitempty"`
	Violations  []*Violation `protobuf:"bytes,8,rep,name=violations,proto3" json:"violations,omitempty"`
	Steps       []string     `protobuf:"bytes,9,rep,name=steps,proto3" json:"steps,omitempty"`
	Digest      string       `protobuf:"bytes,10,opt,name=digest,proto3" json:"digest,omitempty"`
}

func (m *TreeReport) Reset()         { *m = TreeReport{} }
func (m *TreeReport) String() string { return proto.CompactTextString(m) }
func (*TreeReport) ProtoMessage()    {}

// Operation is the outcome of a single scripted operation.
type Operation struct {
	Name      string   `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Arguments []int64  `protobuf:"varint,2,rep,packed,name=arguments,proto3" json:"arguments,omitempty"`
	Steps     []string `protobuf:"bytes,3,rep,name=steps,proto3" json:"steps,omitempty"`
	Output    []string `protobuf:"bytes,4,rep,name=output,proto3" json:"output,omitempty"`
	Diff      string   `protobuf:"bytes,5,opt,name=diff,proto3" json:"diff,omitempty"`
	Digest    string   `protobuf:"bytes,6,opt,name=digest,proto3" json:"digest,omitempty"`
}

func (m *Operation) Reset()         { *m = Operation{} }
func (m *Operation) String() string { return proto.CompactTextString(m) }
func (*Operation) ProtoMessage()    {}

// Metadata identifies the producer of the results.
type Metadata struct {
	Version int32  `protobuf:"varint,1,opt,name=version,proto3" json:"version,omitempty"`
	Hash    string `protobuf:"bytes,2,opt,name=hash,proto3" json:"hash,omitempty"`
	Source  string `protobuf:"bytes,3,opt,name=source,proto3" json:"source,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// Results is the top level message.
type Results struct {
	Header     *Metadata    `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
	Operations []*Operation `protobuf:"bytes,2,rep,name=operations,proto3" json:"operations,omitempty"`
	Final      *TreeReport  `protobuf:"bytes,3,opt,name=final,proto3" json:"final,omitempty"`
}

func (m *Results) Reset()         { *m = Results{} }
func (m *Results) String() string { return proto.CompactTextString(m) }
func (*Results) ProtoMessage()    {}
