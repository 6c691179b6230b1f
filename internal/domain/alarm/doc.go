// Package alarm contains the core domain of coding-time alarms.
//
// A Collection holds Alarm definitions and their trigger state. Every
// Collection operation (Add, GenerateInterval, ClearInterval, Toggle, Remove,
// ResetTrigger) returns a new Collection and never mutates its receiver.
// Evaluate applies the firing rule to a Collection for one elapsed-time
// reading and one calendar day, and returns the updated Collection together
// with the alarms that fired.
package alarm
