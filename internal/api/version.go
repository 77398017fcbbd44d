package api

import "github.com/crumbsapp/crumbs/common"

func (s *Api) Version() *common.VersionResponse {
	return &common.VersionResponse{
		Version:   s.version,
		Commit:    s.commit,
		BuildType: s.buildType,
	}
}
