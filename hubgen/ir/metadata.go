package ir

// PackageInfo describes the Go package the metadata was loaded from.
type PackageInfo struct {
	// Path is the import path.
	Path string

	// Name is the package name.
	Name string

	// Dir is the directory containing the package sources.
	Dir string
}

// Source represents a source code location.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// Contract is a server hub type and the operations it receives.
type Contract struct {
	Name       string
	Operations []OperationDescriptor
	Source     Source
}

// ClientAPI is the companion type describing operations the server invokes
// on clients.
type ClientAPI struct {
	Name       string
	Operations []OperationDescriptor
	Source     Source
}

// Metadata is the complete input for one generation pass.
type Metadata struct {
	Package    PackageInfo
	Contracts  []Contract
	ClientAPIs []ClientAPI
}

// AddContract appends a contract.
func (m *Metadata) AddContract(c Contract) {
	m.Contracts = append(m.Contracts, c)
}

// AddClientAPI appends a client API.
func (m *Metadata) AddClientAPI(c ClientAPI) {
	m.ClientAPIs = append(m.ClientAPIs, c)
}

// FindContract looks up a contract by name. Returns nil if not found.
func (m *Metadata) FindContract(name string) *Contract {
	for i := range m.Contracts {
		if m.Contracts[i].Name == name {
			return &m.Contracts[i]
		}
	}
	return nil
}

// FindClientAPI looks up a client API by name. Returns nil if not found.
func (m *Metadata) FindClientAPI(name string) *ClientAPI {
	for i := range m.ClientAPIs {
		if m.ClientAPIs[i].Name == name {
			return &m.ClientAPIs[i]
		}
	}
	return nil
}
