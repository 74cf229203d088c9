package rekognition

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facematch/internal/provider"
)

type mockCompareFacesAPI struct {
	mock.Mock
}

func (m *mockCompareFacesAPI) CompareFaces(ctx context.Context, params *rekognition.CompareFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.CompareFacesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rekognition.CompareFacesOutput), args.Error(1)
}

func writeImages(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	img1 := filepath.Join(dir, "a.jpg")
	img2 := filepath.Join(dir, "b.jpg")
	require.NoError(t, os.WriteFile(img1, make([]byte, 1024), 0o600))
	require.NoError(t, os.WriteFile(img2, make([]byte, 2048), 0o600))
	return img1, img2
}

func newMockedProvider(api CompareFacesAPI) *Provider {
	return NewProviderWithClient(NewClientWithAPI(api, DefaultConfig()))
}

func TestProvider_Verify(t *testing.T) {
	img1, img2 := writeImages(t)

	tests := []struct {
		name          string
		output        *rekognition.CompareFacesOutput
		wantVerified  bool
		wantDistance  float64
		wantThreshold float64
	}{
		{
			name: "strong match",
			output: &rekognition.CompareFacesOutput{
				FaceMatches: []types.CompareFacesMatch{{Similarity: aws.Float32(99)}},
			},
			wantVerified:  true,
			wantDistance:  0.01,
			wantThreshold: 0.2,
		},
		{
			name: "best of several faces wins",
			output: &rekognition.CompareFacesOutput{
				FaceMatches: []types.CompareFacesMatch{
					{Similarity: aws.Float32(40)},
					{Similarity: aws.Float32(85)},
					{Similarity: nil},
				},
			},
			wantVerified:  true,
			wantDistance:  0.15,
			wantThreshold: 0.2,
		},
		{
			name: "weak match is rejected",
			output: &rekognition.CompareFacesOutput{
				FaceMatches: []types.CompareFacesMatch{{Similarity: aws.Float32(50)}},
			},
			wantVerified:  false,
			wantDistance:  0.5,
			wantThreshold: 0.2,
		},
		{
			name: "only unmatched faces",
			output: &rekognition.CompareFacesOutput{
				UnmatchedFaces: []types.ComparedFace{{}},
			},
			wantVerified:  false,
			wantDistance:  1,
			wantThreshold: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mockCompareFacesAPI)
			api.On("CompareFaces", mock.Anything, mock.MatchedBy(func(in *rekognition.CompareFacesInput) bool {
				return len(in.SourceImage.Bytes) == 1024 && len(in.TargetImage.Bytes) == 2048 &&
					aws.ToFloat32(in.SimilarityThreshold) == 0
			})).Return(tt.output, nil)

			result, err := newMockedProvider(api).Verify(context.Background(), img1, img2)

			require.NoError(t, err)
			assert.Equal(t, tt.wantVerified, result.Verified)
			assert.InDelta(t, tt.wantDistance, result.Distance, 1e-6)
			assert.InDelta(t, tt.wantThreshold, result.Threshold, 1e-9)
			assert.Equal(t, "rekognition", result.Model)
			assert.Equal(t, result.Distance <= result.Threshold, result.Verified)
			api.AssertExpectations(t)
		})
	}
}

func TestProvider_VerifyNoFaceInTarget(t *testing.T) {
	img1, img2 := writeImages(t)

	api := new(mockCompareFacesAPI)
	api.On("CompareFaces", mock.Anything, mock.Anything).Return(&rekognition.CompareFacesOutput{}, nil)

	_, err := newMockedProvider(api).Verify(context.Background(), img1, img2)

	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrNoFaceDetected)
}

func TestProvider_VerifyAPIErrors(t *testing.T) {
	img1, img2 := writeImages(t)

	tests := []struct {
		name    string
		apiErr  error
		wantErr error
	}{
		{
			name:    "no face in source",
			apiErr:  &smithy.GenericAPIError{Code: "InvalidParameterException", Message: "Request has invalid parameters"},
			wantErr: provider.ErrNoFaceDetected,
		},
		{
			name:    "access denied",
			apiErr:  &smithy.GenericAPIError{Code: "AccessDeniedException"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "throttled",
			apiErr:  &smithy.GenericAPIError{Code: "ThrottlingException"},
			wantErr: provider.ErrProviderUnavailable,
		},
		{
			name:    "bad image",
			apiErr:  &smithy.GenericAPIError{Code: "InvalidImageFormatException", Message: "Request has invalid image format"},
			wantErr: ErrInvalidImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mockCompareFacesAPI)
			api.On("CompareFaces", mock.Anything, mock.Anything).Return(nil, tt.apiErr)

			_, err := newMockedProvider(api).Verify(context.Background(), img1, img2)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProvider_VerifyRejectsSmallImages(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.jpg")
	require.NoError(t, os.WriteFile(small, make([]byte, 10), 0o600))
	_, img2 := writeImages(t)

	api := new(mockCompareFacesAPI)

	_, err := newMockedProvider(api).Verify(context.Background(), small, img2)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidImage)
	api.AssertNotCalled(t, "CompareFaces", mock.Anything, mock.Anything)
}

func TestParseCompareFacesError(t *testing.T) {
	assert.NoError(t, ParseCompareFacesError(nil))

	generic := errors.New("connection reset")
	err := ParseCompareFacesError(generic)
	assert.ErrorIs(t, err, generic)

	err = ParseCompareFacesError(&smithy.GenericAPIError{Code: "InvalidParameterException"})
	assert.Equal(t, ErrNoFaceDetected, err)
}

func TestProvider_BuildModelWithoutCredentialsProvider(t *testing.T) {
	p := newMockedProvider(new(mockCompareFacesAPI))
	assert.NoError(t, p.BuildModel(context.Background()))
	assert.Equal(t, "rekognition", p.Name())
}

func TestConfig_DistanceThreshold(t *testing.T) {
	assert.InDelta(t, 0.2, DefaultConfig().DistanceThreshold(), 1e-9)
	assert.InDelta(t, 0.0, Config{SimilarityThreshold: 100}.DistanceThreshold(), 1e-9)
}
