package rekognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/smithy-go"
)

const (
	errCodeAccessDenied          = "AccessDeniedException"
	errCodeInvalidParameter      = "InvalidParameterException"
	errCodeInvalidImageFormat    = "InvalidImageFormatException"
	errCodeImageTooLarge         = "ImageTooLargeException"
	errCodeThrottling            = "ThrottlingException"
	errCodeProvisionedThroughput = "ProvisionedThroughputExceededException"
)

// CompareFacesAPI is the part of the Rekognition SDK client the provider uses
type CompareFacesAPI interface {
	CompareFaces(ctx context.Context, params *rekognition.CompareFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.CompareFacesOutput, error)
}

// Client wraps the AWS Rekognition client
type Client struct {
	api         CompareFacesAPI
	credentials aws.CredentialsProvider
	config      Config
}

// NewClient creates a new Rekognition client with the provided configuration
// It uses the AWS default credential chain to authenticate
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{
		api:         rekognition.NewFromConfig(awsCfg),
		credentials: awsCfg.Credentials,
		config:      cfg,
	}, nil
}

// NewClientWithAPI builds a client around an existing API implementation
func NewClientWithAPI(api CompareFacesAPI, cfg Config) *Client {
	return &Client{
		api:    api,
		config: cfg,
	}
}

// CheckCredentials resolves credentials once so bad setups fail at startup
func (c *Client) CheckCredentials(ctx context.Context) error {
	if c.credentials == nil {
		return nil
	}
	if _, err := c.credentials.Retrieve(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return nil
}

// ParseCompareFacesError maps Rekognition API errors onto provider errors
func ParseCompareFacesError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case errCodeInvalidParameter:
			// Rekognition answers InvalidParameter when the source image has no face
			if msg := apiErr.ErrorMessage(); msg != "" {
				return fmt.Errorf("%w: %s", ErrNoFaceDetected, msg)
			}
			return ErrNoFaceDetected
		case errCodeInvalidImageFormat, errCodeImageTooLarge:
			return fmt.Errorf("%w: %s", ErrInvalidImage, apiErr.ErrorMessage())
		case errCodeAccessDenied:
			return ErrInvalidCredentials
		case errCodeThrottling, errCodeProvisionedThroughput:
			return ErrThrottled
		}
	}

	return fmt.Errorf("compare faces: %w", err)
}
