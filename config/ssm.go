package config

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/pkg/errors"
)

const ssmScheme = "ssm://"

// ParameterResolver looks up the value of a named parameter.
type ParameterResolver interface {
	Resolve(name string) (string, error)
}

// ParameterName returns the SSM parameter name referenced by value and true
// when value has the form ssm://<name>.
func ParameterName(value string) (string, bool) {
	if !strings.HasPrefix(value, ssmScheme) {
		return "", false
	}

	name := strings.TrimPrefix(value, ssmScheme)
	if name == "" {
		return "", false
	}

	// ssm://prod/n8n/url and ssm:///prod/n8n/url name the same parameter.
	return "/" + strings.TrimPrefix(name, "/"), true
}

// SSMResolver reads parameters from AWS Systems Manager Parameter Store.
// SecureString parameters are decrypted.
type SSMResolver struct {
	Region string

	svcFunc func(client.ConfigProvider) ssmiface.SSMAPI
}

// NewSSMResolver returns a resolver for the given region.
func NewSSMResolver(region string) *SSMResolver {
	return &SSMResolver{Region: region}
}

// svc is used internally to assist stubs on ssm for testing
func (r *SSMResolver) svc(p client.ConfigProvider) ssmiface.SSMAPI {
	if r.svcFunc != nil {
		return r.svcFunc(p)
	}

	return ssm.New(p)
}

// Resolve returns the value stored under name.
func (r *SSMResolver) Resolve(name string) (string, error) {
	s, err := session.NewSession(&aws.Config{
		Region: aws.String(r.Region),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed getting session")
	}

	out, err := r.svc(s).GetParameter(&ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed getting parameter %s", name)
	}

	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.Errorf("parameter %s has no value", name)
	}

	return aws.StringValue(out.Parameter.Value), nil
}
