package bus

// DamageType distinguishes Normal damage from elemental damage types that
// skills/judgements may react to differently.
type DamageType string

// Damage types.
const (
	DamageNormal  DamageType = "Normal"
	DamageFire    DamageType = "Fire"
	DamageThunder DamageType = "Thunder"
)

// DamageEvent carries a damage descriptor snapshot at Before/During/After
// points in the damage pipeline (spec.md §3 DamageDescriptor, §4.C).
type DamageEvent struct {
	Kind             Kind
	SourceSeat       int
	TargetSeat       int
	Amount           int
	Type             DamageType
	Reason           string
	Preventable      bool
	TransferredToSeat *int
	TriggersDying    bool
}

// EventKind implements Event.
func (e DamageEvent) EventKind() Kind { return e.Kind }

// HpLostEvent is published by LoseHpResolver, distinct from DamageEvent so
// damage-triggered listeners never fire for HP loss (spec.md §4.C, law 7).
type HpLostEvent struct {
	Kind          Kind
	TargetSeat    int
	Amount        int
	PreviousHealth int
	NewHealth     int
}

// EventKind implements Event.
func (e HpLostEvent) EventKind() Kind { return e.Kind }

// CardMovedEvent is published by the card-move service on every successful
// relocation (spec.md §6 CardMoveService).
type CardMovedEvent struct {
	CardID       string
	FromZoneKind string
	ToZoneKind   string
	Reason       string
}

// EventKind implements Event.
func (e CardMovedEvent) EventKind() Kind { return KindCardMoved }

// JudgementEvent is published Before/After a judgement draw resolves
// (spec.md §4.G).
type JudgementEvent struct {
	Kind          Kind
	JudgeOwnerSeat int
	InitialCardID string
	FinalCardID   string
	Success       bool
}

// EventKind implements Event.
func (e JudgementEvent) EventKind() Kind { return e.Kind }

// WeaponTransferredEvent is published when JieDaoShaRen's fallback branch
// moves a weapon instead of forcing a Slash (spec.md §4.J).
type WeaponTransferredEvent struct {
	FromSeat int
	ToSeat   int
	CardID   string
}

// EventKind implements Event.
func (e WeaponTransferredEvent) EventKind() Kind { return KindWeaponTransferred }

// DyingEvent brackets the dying window a player enters at 0 HP
// (spec.md §4.C, GLOSSARY "Dying").
type DyingEvent struct {
	Kind       Kind
	PlayerSeat int
}

// EventKind implements Event.
func (e DyingEvent) EventKind() Kind { return e.Kind }
