package enforcer

// GraceWindowDays separates the notify and deactivate thresholds. A key past
// the notify age has this many days before it is disabled.
const GraceWindowDays = 7

// ContactTagKey is the user tag holding the notification recipient address.
const ContactTagKey = "Contact"
