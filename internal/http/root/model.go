package root

// Greeting is the fixed payload served at the root path.
type Greeting struct {
	Hello string `json:"hello" doc:"Greeting target" example:"world"`
}

// Output wraps the greeting as the response body.
type Output struct {
	Body Greeting
}
