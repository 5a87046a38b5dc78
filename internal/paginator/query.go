package paginator

// Query describes one fetch: an endpoint, its filter parameters, the PI
// fields to anonymize in the returned records and the sort order.
// A Query is immutable; accessors hand out copies.
type Query struct {
	endpoint string
	params   map[string]string
	piFields []string
	order    string
}

// NewQuery builds a Query, copying params and piFields.
func NewQuery(endpoint string, params map[string]string, piFields []string, order string) Query {
	q := Query{
		endpoint: endpoint,
		params:   make(map[string]string, len(params)),
		piFields: append([]string(nil), piFields...),
		order:    order,
	}
	for k, v := range params {
		q.params[k] = v
	}
	return q
}

func (q Query) Endpoint() string { return q.endpoint }
func (q Query) Order() string    { return q.order }

// Params returns a copy of the filter parameters.
func (q Query) Params() map[string]string {
	out := make(map[string]string, len(q.params))
	for k, v := range q.params {
		out[k] = v
	}
	return out
}

// PIFields returns a copy of the personally-identifying field names.
func (q Query) PIFields() []string {
	return append([]string(nil), q.piFields...)
}
