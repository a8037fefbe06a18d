package gamepb

// MessageType distinguishes gate frames
type MessageType int32

const (
	MessageRequest  MessageType = 1
	MessageResponse MessageType = 2
	MessageNotify   MessageType = 3
)

// Gate envelope field numbers
const (
	fieldMessageMeta = 1
	fieldMessageBody = 2

	fieldMetaService      = 1
	fieldMetaMethod       = 2
	fieldMetaType         = 3
	fieldMetaClientSeq    = 4
	fieldMetaServerSeq    = 5
	fieldMetaErrorCode    = 6
	fieldMetaErrorMessage = 7

	fieldEventType = 1
	fieldEventBody = 2
)
