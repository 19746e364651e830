package conversation

func contactToDto(c *Contact) ConversationContactDto { return ConversationContactDto(*c) }

func contactFromDto(d ConversationContactDto) *Contact {
	c := Contact(d)
	return &c
}

func contactUserToDto(u *ContactUser) ContactUserDto { return ContactUserDto(*u) }

func conversationToDto(c *Conversation) ConversationDto { return ConversationDto(*c) }

func conversationFromDto(d ConversationDto) *Conversation {
	c := Conversation(d)
	return &c
}

func messageToDto(m *Message) ConversationMessageDto { return ConversationMessageDto(*m) }

func messageFromDto(d ConversationMessageDto) *Message {
	m := Message(d)
	return &m
}

func participantToDto(p *Participant) ConversationParticipantDto { return ConversationParticipantDto(*p) }

func participantFromDto(d ConversationParticipantDto) *Participant {
	p := Participant(d)
	return &p
}

func attachmentToDto(a *Attachment) ConversationAttachmentDto { return ConversationAttachmentDto(*a) }

func attachmentFromDto(d ConversationAttachmentDto) *Attachment {
	a := Attachment(d)
	return &a
}

func statusToDto(s *Status) ConversationStatusDto { return ConversationStatusDto(*s) }

func statusFromDto(d ConversationStatusDto) *Status {
	s := Status(d)
	return &s
}

func taskGroupLinkToDto(l *Link) ConversationTaskGroupDto {
	return ConversationTaskGroupDto{ConversationID: l.ConversationID, TaskGroupID: l.TargetID}
}

func medicationLinkToDto(l *Link) ConversationMedicationDto {
	return ConversationMedicationDto{ConversationID: l.ConversationID, PrescriptionID: l.TargetID}
}

func externalPatientLinkToDto(l *Link) ConversationExternalPatientDto {
	return ConversationExternalPatientDto{ConversationID: l.ConversationID, ExternalPatientID: l.TargetID}
}
