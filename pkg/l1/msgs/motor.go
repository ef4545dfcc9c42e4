package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/motorctl/pkg/framework"
)

// MotorCapsQuery command.
type MotorCapsQuery struct {
}

// NewMessage implements Message.
func (m *MotorCapsQuery) NewMessage() fx.Message { return &MotorCapsQuery{} }

// TypeID implements SerializableMessage.
func (m *MotorCapsQuery) TypeID() uint32 { return MotorCapsQueryTypeID }

// Serializable implements SerializableMessage.
func (m *MotorCapsQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorCapsQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorCapsQuery) Reset() { *m = MotorCapsQuery{} }

// String implements proto.Message.
func (m *MotorCapsQuery) String() string { return proto.CompactTextString(m) }

// MotorCaps describes the regulator.
type MotorCaps struct {
	Channels          uint32  `protobuf:"varint,1,opt,name=channels,proto3" json:"channels,omitempty"`
	SystemClock       uint32  `protobuf:"varint,2,opt,name=system_clock,json=systemClock,proto3" json:"system_clock,omitempty"`
	PwmFrequency      uint32  `protobuf:"varint,3,opt,name=pwm_frequency,json=pwmFrequency,proto3" json:"pwm_frequency,omitempty"`
	Period            uint32  `protobuf:"varint,4,opt,name=period,proto3" json:"period,omitempty"`
	HysteresisVoltage uint32  `protobuf:"varint,5,opt,name=hysteresis_voltage,json=hysteresisVoltage,proto3" json:"hysteresis_voltage,omitempty"`
	HysteresisCurrent uint32  `protobuf:"varint,6,opt,name=hysteresis_current,json=hysteresisCurrent,proto3" json:"hysteresis_current,omitempty"`
	VoltsPerCount     float32 `protobuf:"fixed32,7,opt,name=volts_per_count,json=voltsPerCount,proto3" json:"volts_per_count,omitempty"`
	AmpsPerCount      float32 `protobuf:"fixed32,8,opt,name=amps_per_count,json=ampsPerCount,proto3" json:"amps_per_count,omitempty"`
	SetpointPolicy    string  `protobuf:"bytes,9,opt,name=setpoint_policy,json=setpointPolicy,proto3" json:"setpoint_policy,omitempty"`
}

// NewMessage implements Message.
func (m *MotorCaps) NewMessage() fx.Message { return &MotorCaps{} }

// TypeID implements SerializableMessage.
func (m *MotorCaps) TypeID() uint32 { return MotorCapsTypeID }

// Serializable implements SerializableMessage.
func (m *MotorCaps) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorCaps) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorCaps) Reset() { *m = MotorCaps{} }

// String implements proto.Message.
func (m *MotorCaps) String() string { return proto.CompactTextString(m) }

// MotorLimitsSet command sends a setpoint frame built from limits in
// volts and amps, one value per channel.
type MotorLimitsSet struct {
	Volts []float32 `protobuf:"fixed32,1,rep,packed,name=volts,proto3" json:"volts,omitempty"`
	Amps  []float32 `protobuf:"fixed32,2,rep,packed,name=amps,proto3" json:"amps,omitempty"`
}

// NewMessage implements Message.
func (m *MotorLimitsSet) NewMessage() fx.Message { return &MotorLimitsSet{} }

// TypeID implements SerializableMessage.
func (m *MotorLimitsSet) TypeID() uint32 { return MotorLimitsSetTypeID }

// Serializable implements SerializableMessage.
func (m *MotorLimitsSet) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorLimitsSet) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorLimitsSet) Reset() { *m = MotorLimitsSet{} }

// String implements proto.Message.
func (m *MotorLimitsSet) String() string { return proto.CompactTextString(m) }

// MotorFrameSend command transmits a raw frame on the protocol line.
type MotorFrameSend struct {
	Frame []byte `protobuf:"bytes,1,opt,name=frame,proto3" json:"frame,omitempty"`
	// Seal replaces the last byte with the checksum before sending.
	Seal bool `protobuf:"varint,2,opt,name=seal,proto3" json:"seal,omitempty"`
}

// NewMessage implements Message.
func (m *MotorFrameSend) NewMessage() fx.Message { return &MotorFrameSend{} }

// TypeID implements SerializableMessage.
func (m *MotorFrameSend) TypeID() uint32 { return MotorFrameSendTypeID }

// Serializable implements SerializableMessage.
func (m *MotorFrameSend) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorFrameSend) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorFrameSend) Reset() { *m = MotorFrameSend{} }

// String implements proto.Message.
func (m *MotorFrameSend) String() string { return proto.CompactTextString(m) }

// MotorStatusQuery command.
type MotorStatusQuery struct {
}

// NewMessage implements Message.
func (m *MotorStatusQuery) NewMessage() fx.Message { return &MotorStatusQuery{} }

// TypeID implements SerializableMessage.
func (m *MotorStatusQuery) TypeID() uint32 { return MotorStatusQueryTypeID }

// Serializable implements SerializableMessage.
func (m *MotorStatusQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorStatusQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorStatusQuery) Reset() { *m = MotorStatusQuery{} }

// String implements proto.Message.
func (m *MotorStatusQuery) String() string { return proto.CompactTextString(m) }

// MotorStatus is the reply of MotorStatusQuery.
// Samples are raw counts in the order V1, V2, I1, I2.
type MotorStatus struct {
	Samples     []uint32  `protobuf:"varint,1,rep,packed,name=samples,proto3" json:"samples,omitempty"`
	Setpoint    []byte    `protobuf:"bytes,2,opt,name=setpoint,proto3" json:"setpoint,omitempty"`
	Duty        []uint32  `protobuf:"varint,3,rep,packed,name=duty,proto3" json:"duty,omitempty"`
	Period      uint32    `protobuf:"varint,4,opt,name=period,proto3" json:"period,omitempty"`
	Edges       uint32    `protobuf:"varint,5,opt,name=edges,proto3" json:"edges,omitempty"`
	Resyncs     uint32    `protobuf:"varint,6,opt,name=resyncs,proto3" json:"resyncs,omitempty"`
	Frames      uint32    `protobuf:"varint,7,opt,name=frames,proto3" json:"frames,omitempty"`
	Dropped     uint32    `protobuf:"varint,8,opt,name=dropped,proto3" json:"dropped,omitempty"`
	Conversions uint32    `protobuf:"varint,9,opt,name=conversions,proto3" json:"conversions,omitempty"`
	Stalls      uint32    `protobuf:"varint,10,opt,name=stalls,proto3" json:"stalls,omitempty"`
	Volts       []float32 `protobuf:"fixed32,11,rep,packed,name=volts,proto3" json:"volts,omitempty"`
	Amps        []float32 `protobuf:"fixed32,12,rep,packed,name=amps,proto3" json:"amps,omitempty"`
}

// NewMessage implements Message.
func (m *MotorStatus) NewMessage() fx.Message { return &MotorStatus{} }

// TypeID implements SerializableMessage.
func (m *MotorStatus) TypeID() uint32 { return MotorStatusTypeID }

// Serializable implements SerializableMessage.
func (m *MotorStatus) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorStatus) Reset() { *m = MotorStatus{} }

// String implements proto.Message.
func (m *MotorStatus) String() string { return proto.CompactTextString(m) }

// MotorStatusEvent is the periodic telemetry, same schema as MotorStatus.
type MotorStatusEvent MotorStatus

// NewMessage implements Message.
func (m *MotorStatusEvent) NewMessage() fx.Message { return &MotorStatusEvent{} }

// TypeID implements SerializableMessage.
func (m *MotorStatusEvent) TypeID() uint32 { return MotorStatusEventTypeID }

// Serializable implements SerializableMessage.
func (m *MotorStatusEvent) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorStatusEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorStatusEvent) Reset() { *m = MotorStatusEvent{} }

// String implements proto.Message.
func (m *MotorStatusEvent) String() string { return proto.CompactTextString(m) }

// Status converts the event into the reply schema.
func (m *MotorStatusEvent) Status() *MotorStatus { return (*MotorStatus)(m) }

// TypeIDs
const (
	MotorCapsQueryTypeID   uint32 = GroupMotor | 0x0000
	MotorCapsTypeID        uint32 = MotorCapsQueryTypeID | TypeIDMaskReply
	MotorLimitsSetTypeID   uint32 = GroupMotor | 0x0001
	MotorFrameSendTypeID   uint32 = GroupMotor | 0x0002
	MotorStatusQueryTypeID uint32 = GroupMotor | 0x0003
	MotorStatusTypeID      uint32 = MotorStatusQueryTypeID | TypeIDMaskReply
	MotorStatusEventTypeID uint32 = GroupMotor | TypeIDKindEvent | 0x0000
)

func init() {
	RegisterTypes(
		(*MotorCapsQuery)(nil),
		(*MotorCaps)(nil),
		(*MotorLimitsSet)(nil),
		(*MotorFrameSend)(nil),
		(*MotorStatusQuery)(nil),
		(*MotorStatus)(nil),
		(*MotorStatusEvent)(nil),
	)
}
