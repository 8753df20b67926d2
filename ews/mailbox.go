package ews

import "github.com/beevik/etree"

// DefaultRoutingType is the routing Exchange assumes for plain addresses.
const DefaultRoutingType = "SMTP"

// MailboxTarget is a single addressable mailbox: a recipient, sender or
// reply-to entry. Immutable once constructed.
type MailboxTarget struct {
	name         string
	emailAddress string
	routingType  string
	mailboxType  string
}

// NewMailboxTarget builds a target from explicit fields with the default
// SMTP routing type.
func NewMailboxTarget(emailAddress, name string) *MailboxTarget {
	return &MailboxTarget{
		name:         name,
		emailAddress: emailAddress,
		routingType:  DefaultRoutingType,
	}
}

// newMailboxTargetFromXML parses a t:Mailbox element.
func newMailboxTargetFromXML(elem *etree.Element) *MailboxTarget {
	target := &MailboxTarget{routingType: DefaultRoutingType}
	if e := elem.FindElement("t:Name"); e != nil {
		target.name = e.Text()
	}
	if e := elem.FindElement("t:EmailAddress"); e != nil {
		target.emailAddress = e.Text()
	}
	if e := elem.FindElement("t:RoutingType"); e != nil {
		target.routingType = e.Text()
	}
	if e := elem.FindElement("t:MailboxType"); e != nil {
		target.mailboxType = e.Text()
	}
	return target
}

func (t *MailboxTarget) Name() string { return t.name }

func (t *MailboxTarget) EmailAddress() string { return t.emailAddress }

func (t *MailboxTarget) RoutingType() string { return t.routingType }

func (t *MailboxTarget) MailboxType() string { return t.mailboxType }

// MailboxTargetList is an ordered container of mailbox targets. Insertion
// order is significant: it reflects the wire order of recipients.
// Duplicates are not suppressed.
type MailboxTargetList struct {
	targets []*MailboxTarget
}

// NewMailboxTargetList builds a list from zero or more targets.
func NewMailboxTargetList(targets ...*MailboxTarget) *MailboxTargetList {
	return &MailboxTargetList{targets: targets}
}

// newMailboxTargetListFromXML parses a recipient container element
// (t:ToRecipients, t:CcRecipients, t:ReplyTo, t:Sender, t:From) into a
// list, preserving document order. A nil element yields an empty list.
func newMailboxTargetListFromXML(elem *etree.Element) *MailboxTargetList {
	list := &MailboxTargetList{}
	if elem == nil {
		return list
	}
	for _, child := range elem.ChildElements() {
		list.targets = append(list.targets, newMailboxTargetFromXML(child))
	}
	return list
}

func (l *MailboxTargetList) Len() int { return len(l.targets) }

// At returns the target at index i.
func (l *MailboxTargetList) At(i int) *MailboxTarget { return l.targets[i] }

// Targets returns the backing slice in order.
func (l *MailboxTargetList) Targets() []*MailboxTarget { return l.targets }

// First returns the first target, or nil for an empty list. Sender and
// From are carried as 1-element lists; this is their accessor.
func (l *MailboxTargetList) First() *MailboxTarget {
	if len(l.targets) == 0 {
		return nil
	}
	return l.targets[0]
}

// Add constructs a target from explicit fields, appends it and returns it.
func (l *MailboxTargetList) Add(emailAddress, name string) *MailboxTarget {
	target := NewMailboxTarget(emailAddress, name)
	l.targets = append(l.targets, target)
	return target
}

// AddTarget appends an existing target.
func (l *MailboxTargetList) AddTarget(target *MailboxTarget) {
	l.targets = append(l.targets, target)
}
