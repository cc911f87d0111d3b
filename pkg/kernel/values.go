package kernel

type JobTitle string

func (t JobTitle) String() string { return string(t) }

type CompanyName string

func (c CompanyName) String() string { return string(c) }

type JobDescription string

func (d JobDescription) String() string { return string(d) }

type JobLocation string

func (l JobLocation) String() string { return string(l) }
