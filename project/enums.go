package project

// ObjectType tags what kind of object an entity is.
type ObjectType string

const (
	TypeActive   ObjectType = "Active"
	TypeBackdrop ObjectType = "Backdrop"
	TypeCounter  ObjectType = "Counter"
	TypeText     ObjectType = "Text"
	TypeLives    ObjectType = "Lives"
	TypeTimer    ObjectType = "Timer"
	TypePlayer   ObjectType = "Player"
	TypePlatform ObjectType = "Platform"
	TypeEnemy    ObjectType = "Enemy"
	TypeCoin     ObjectType = "Coin"
	TypeTrigger  ObjectType = "Trigger"
	TypeParticle ObjectType = "Particle"
)

// ObjectTypes lists every object type in palette order.
var ObjectTypes = []ObjectType{
	TypeActive, TypeBackdrop, TypeCounter, TypeText, TypeLives, TypeTimer,
	TypePlayer, TypePlatform, TypeEnemy, TypeCoin, TypeTrigger, TypeParticle,
}

// Movement tags the per-tick behavior of an object.
type Movement string

const (
	MovementStatic   Movement = "Static"
	MovementPlayer   Movement = "Player"
	MovementBouncing Movement = "Bouncing"
	MovementEightDir Movement = "8Dir"
	MovementPath     Movement = "Path"
	MovementPlatform Movement = "Platform"
	MovementRaceCar  Movement = "Race Car"
)

type Shape string

const (
	ShapeRect     Shape = "rect"
	ShapeOval     Shape = "oval"
	ShapeTriangle Shape = "triangle"
)

// ConditionType values match the labels stored by the editor.
type ConditionType string

const (
	CondAlways             ConditionType = "Always"
	CondNever              ConditionType = "Never"
	CondOnce               ConditionType = "Once"
	CondEveryNMs           ConditionType = "Every N ms"
	CondTimerEquals        ConditionType = "Timer equals"
	CondCollidesWith       ConditionType = "Collides with"
	CondOverlaps           ConditionType = "Overlaps"
	CondOverlapsBackdrop   ConditionType = "Is overlapping backdrop"
	CondKeyPressed         ConditionType = "Key pressed"
	CondKeyReleased        ConditionType = "Key released"
	CondMouseClicked       ConditionType = "Mouse clicked"
	CondMouseOnObject      ConditionType = "Mouse on object"
	CondCompareX           ConditionType = "Compare X"
	CondCompareY           ConditionType = "Compare Y"
	CondCompareCounter     ConditionType = "Compare counter"
	CondCompareSpeed       ConditionType = "Compare speed"
	CondObjectVisible      ConditionType = "Object is visible"
	CondObjectInvisible    ConditionType = "Object is invisible"
	CondAtStartOfFrame     ConditionType = "At start of frame"
	CondAtEndOfFrame       ConditionType = "At end of frame"
	CondObjectCount        ConditionType = "Number of objects == N"
	CondOutOfPlayfield     ConditionType = "Object out of playfield"
	CondPickRandom         ConditionType = "Pick random"
	CondCompareGlobal      ConditionType = "Compare global value"
	CondEvaluateExpression ConditionType = "Evaluate expression"
)

// ActionType values match the labels stored by the editor.
type ActionType string

const (
	ActCreateObject        ActionType = "Create object"
	ActDestroy             ActionType = "Destroy"
	ActSetPosition         ActionType = "Set position"
	ActSetX                ActionType = "Set X"
	ActSetY                ActionType = "Set Y"
	ActSetSpeed            ActionType = "Set speed"
	ActSetDirection        ActionType = "Set direction"
	ActBounce              ActionType = "Bounce"
	ActStop                ActionType = "Stop"
	ActReverse             ActionType = "Reverse"
	ActMakeInvisible       ActionType = "Make invisible"
	ActMakeVisible         ActionType = "Make visible"
	ActFlash               ActionType = "Flash"
	ActSetCounter          ActionType = "Set counter to"
	ActAddToCounter        ActionType = "Add to counter"
	ActSubtractFromCounter ActionType = "Subtract from counter"
	ActSetText             ActionType = "Set text"
	ActSetColor            ActionType = "Set color"
	ActSetLives            ActionType = "Set lives"
	ActAddLife             ActionType = "Add life"
	ActSubtractLife        ActionType = "Subtract life"
	ActGoToFrame           ActionType = "Go to frame"
	ActNextFrame           ActionType = "Next frame (app)"
	ActPreviousFrame       ActionType = "Previous frame (app)"
	ActRestartFrame        ActionType = "Restart frame"
	ActEndApplication      ActionType = "End application"
	ActPause               ActionType = "Pause"
	ActUnpause             ActionType = "Unpause"
	ActSetGlobalValue      ActionType = "Set global value"
	ActAddToGlobalValue    ActionType = "Add to global value"
	ActSetScore            ActionType = "Set score"
	ActAddToScore          ActionType = "Add to score"
	ActBringToFront        ActionType = "Bring to front"
	ActSendToBack          ActionType = "Send to back"
	ActSetLayer            ActionType = "Set layer"
	ActSetAlterableValue   ActionType = "Set alterable value"
	ActRunScript           ActionType = "Run script"
)
