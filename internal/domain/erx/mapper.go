package erx

// Every erx DTO mirrors its model field for field, so mapping is a
// conversion in both directions.

func jobTypeToDto(t *JobType) EprescribeJobTypeDto { return EprescribeJobTypeDto(*t) }

func jobTypeFromDto(d EprescribeJobTypeDto) *JobType {
	t := JobType(d)
	return &t
}

func jobOutcomeToDto(o *JobOutcome) EprescribeJobOutcomeDto { return EprescribeJobOutcomeDto(*o) }

func jobOutcomeFromDto(d EprescribeJobOutcomeDto) *JobOutcome {
	o := JobOutcome(d)
	return &o
}

func jobToDto(j *Job) EprescribeJobDto { return EprescribeJobDto(*j) }

func jobFromDto(d EprescribeJobDto) *Job {
	j := Job(d)
	return &j
}

func taskToDto(t *Task) EprescribeJobTaskDto { return EprescribeJobTaskDto(*t) }

func taskFromDto(d EprescribeJobTaskDto) *Task {
	t := Task(d)
	return &t
}

func cancelRequestToDto(r *CancelRequest) EprescribeCancelRequestDto {
	return EprescribeCancelRequestDto(*r)
}

func cancelRequestFromDto(d EprescribeCancelRequestDto) *CancelRequest {
	r := CancelRequest(d)
	return &r
}

func cancelResponseToDto(r *CancelResponse) EprescribeCancelResponseDto {
	return EprescribeCancelResponseDto(*r)
}

func cancelResponseFromDto(d EprescribeCancelResponseDto) *CancelResponse {
	r := CancelResponse(d)
	return &r
}

func orderStatusToDto(s *OrderStatus) EprescribeOrderStatusDto { return EprescribeOrderStatusDto(*s) }

func orderStatusFromDto(d EprescribeOrderStatusDto) *OrderStatus {
	s := OrderStatus(d)
	return &s
}

func jobTypeCursor(t *JobType) int64             { return t.JobTypeID }
func jobOutcomeCursor(o *JobOutcome) int64       { return o.JobOutcomeID }
func jobCursor(j *Job) int64                     { return j.EprescribeJobID }
func taskCursor(t *Task) int64                   { return t.JobTaskID }
func cancelRequestCursor(r *CancelRequest) int64 { return r.CancelRequestID }
func orderStatusCursor(s *OrderStatus) int64     { return s.OrderStatusID }

func cancelResponseCursor(r *CancelResponse) int64 { return r.CancelResponseID }
