package renewal

func groupToDto(g *Group) RenewalRequestGroupDto { return RenewalRequestGroupDto(*g) }

func groupFromDto(d RenewalRequestGroupDto) *Group {
	g := Group(d)
	return &g
}

func requestToDto(r *Request) RenewalRequestDto { return RenewalRequestDto(*r) }

func requestFromDto(d RenewalRequestDto) *Request {
	r := Request(d)
	return &r
}

func responseToDto(r *Response) RenewalRequestResponseDto { return RenewalRequestResponseDto(*r) }

func responseFromDto(d RenewalRequestResponseDto) *Response {
	r := Response(d)
	return &r
}

func groupCursor(g *Group) int64       { return g.RenewalRequestGroupID }
func requestCursor(r *Request) int64   { return r.RenewalRequestID }
func responseCursor(r *Response) int64 { return r.RenewalResponseID }
