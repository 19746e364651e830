package dispense

func toDto(n *Notification) DispenseNotificationDto { return DispenseNotificationDto(*n) }

func fromDto(d DispenseNotificationDto) *Notification {
	n := Notification(d)
	return &n
}

func cursor(n *Notification) int64 { return n.DispenseNotificationID }
