package request

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/s0up4200/wgapi/apierr"
	"github.com/s0up4200/wgapi/cluster"
)

// Scheme is the URL scheme used for requests
type Scheme string

const (
	HTTP  Scheme = "http"
	HTTPS Scheme = "https"
)

// ErrUnsupportedScheme is returned by Build for schemes other than HTTP and HTTPS
var ErrUnsupportedScheme = errors.New("unsupported scheme")

// Builder accumulates everything needed to address one API method.
//
// Builder is a value: every With* method returns a modified copy and leaves
// the receiver untouched, so a base builder (cluster, region, application id)
// can be shared across many calls and goroutines.
type Builder struct {
	scheme      Scheme
	cluster     cluster.Cluster
	region      cluster.Region
	methodBlock string
	methodName  string
	params      []Param
}

// New returns an empty builder using HTTPS
func New() Builder {
	return Builder{scheme: HTTPS}
}

// Clone returns a copy that shares no mutable state with b
func (b Builder) Clone() Builder {
	b.params = slices.Clone(b.params)
	return b
}

// WithScheme sets the URL scheme
func (b Builder) WithScheme(s Scheme) Builder {
	nb := b.Clone()
	nb.scheme = s
	return nb
}

// WithCluster sets the cluster
func (b Builder) WithCluster(c cluster.Cluster) Builder {
	nb := b.Clone()
	nb.cluster = c
	return nb
}

// WithRegion sets the region
func (b Builder) WithRegion(r cluster.Region) Builder {
	nb := b.Clone()
	nb.region = r
	return nb
}

// WithMethod sets the method block and the method name
func (b Builder) WithMethod(block, name string) Builder {
	nb := b.Clone()
	nb.methodBlock = block
	nb.methodName = name
	return nb
}

// WithParameter appends p. Earlier parameters with the same name are kept.
func (b Builder) WithParameter(p Param) Builder {
	nb := b.Clone()
	nb.params = append(nb.params, p)
	return nb
}

// WithParameters appends ps in order
func (b Builder) WithParameters(ps ...Param) Builder {
	nb := b.Clone()
	nb.params = append(nb.params, ps...)
	return nb
}

// WithApplicationID appends the application_id parameter
func (b Builder) WithApplicationID(id string) Builder {
	return b.WithParameter(NewParam(ApplicationIDParam, id))
}

// WithAccessToken appends the access_token parameter.
// The token is lower-cased like every other parameter value.
func (b Builder) WithAccessToken(token string) Builder {
	return b.WithParameter(NewParam(AccessTokenParam, token))
}

// Scheme returns the configured scheme, HTTPS when unset
func (b Builder) Scheme() Scheme {
	if b.scheme == "" {
		return HTTPS
	}
	return b.scheme
}

// Cluster returns the configured cluster
func (b Builder) Cluster() cluster.Cluster { return b.cluster }

// Region returns the configured region
func (b Builder) Region() cluster.Region { return b.region }

// MethodBlock returns the configured method block
func (b Builder) MethodBlock() string { return b.methodBlock }

// MethodName returns the configured method name
func (b Builder) MethodName() string { return b.methodName }

// Params returns a copy of the accumulated parameters
func (b Builder) Params() []Param {
	return slices.Clone(b.params)
}

// HasParam checks if a parameter with name was added
func (b Builder) HasParam(name string) bool {
	return slices.ContainsFunc(b.params, func(p Param) bool {
		return p.Name == name
	})
}

// Build validates the builder and assembles the request URL:
//
//	scheme://{host}/{cluster}/{block}/{method}/?{params}
//
// Region is validated before cluster, cluster before method block. Every
// failure is an *apierr.Error with apierr.BuildURLFailed wrapping the cause.
func (b Builder) Build() (*url.URL, error) {
	u, err := b.build()
	if err != nil {
		return nil, apierr.Wrap(apierr.BuildURLFailed, err)
	}
	return u, nil
}

func (b Builder) build() (*url.URL, error) {
	if b.region == "" {
		return nil, apierr.New(apierr.NullRegion)
	}
	if b.cluster == "" {
		return nil, apierr.New(apierr.NullCluster)
	}

	host, err := b.cluster.Host(b.region)
	if err != nil {
		return nil, err
	}

	if b.methodBlock == "" {
		return nil, apierr.New(apierr.NullMethod)
	}

	for _, p := range b.params {
		if p.Name == "" {
			return nil, &apierr.Error{Code: apierr.NullParameter, Value: p.Value}
		}
	}

	scheme := b.Scheme()
	if scheme != HTTP && scheme != HTTPS {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedScheme, scheme)
	}

	path := "/" + b.cluster.APIName() + "/" + b.methodBlock + "/"
	if b.methodName != "" {
		path += b.methodName + "/"
	}

	return &url.URL{
		Scheme:   string(scheme),
		Host:     host,
		Path:     path,
		RawQuery: Encode(b.params),
	}, nil
}
