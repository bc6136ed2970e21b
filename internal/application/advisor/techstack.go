package advisor

import (
	"strings"

	"dev-advisor-api/internal/domain/entity"
)

// RecommendTechStack 生成技术选型建议
// 纯函数，无随机性；插入顺序仅用于展示分组。
// 无论输入内容如何，结尾的通用工程化条目（包管理、代码质量、版本控制）始终存在。
func RecommendTechStack(req *entity.ProjectRequirement, complexity entity.ComplexityAssessment) []entity.TechStackEntry {
	stack := make([]entity.TechStackEntry, 0, 24)
	push := func(category, name, version, reason string, priority entity.TechStackPriority) {
		stack = append(stack, entity.TechStackEntry{
			Category: category,
			Name:     name,
			Version:  version,
			Reason:   reason,
			Priority: priority,
		})
	}

	isWeb := platformMatches(req.TargetPlatform, "web")
	isMobile := platformMatches(req.TargetPlatform, "移动", "mobile", "ios", "android")
	features := strings.ToLower(strings.Join(req.Features, " "))
	category := req.Category

	// 前端部分
	if isWeb {
		push("前端框架", "React", "18.x", "生态成熟、社区活跃，适合各种规模的 Web 应用", entity.PriorityMustHave)
		if complexity.Level == entity.ComplexityComplex || complexity.Level == entity.ComplexityEnterprise {
			push("状态管理", "Redux Toolkit", "2.x", "复杂应用需要可预测的集中式状态管理", entity.PriorityRecommended)
		} else {
			push("状态管理", "Zustand", "4.x", "轻量级状态管理，上手简单", entity.PriorityRecommended)
		}
		push("UI 组件库", "Ant Design", "5.x", "企业级组件库，开箱即用", entity.PriorityRecommended)
		push("样式方案", "Tailwind CSS", "3.x", "原子化样式，开发效率高", entity.PriorityOptional)
		push("路由", "React Router", "6.x", "React 生态标准路由方案", entity.PriorityMustHave)
	}

	if isMobile {
		push("跨端框架", "React Native", "0.74", "一套代码同时覆盖 iOS 与 Android", entity.PriorityMustHave)
		push("移动端导航", "React Navigation", "6.x", "React Native 事实标准导航库", entity.PriorityRecommended)
	}

	// 功能关键词驱动的选型
	if strings.Contains(features, "图表") || strings.Contains(features, "数据可视化") {
		push("数据可视化", "ECharts", "5.x", "图表类型丰富，文档完善", entity.PriorityRecommended)
	}
	if strings.Contains(features, "表单") {
		push("表单处理", "React Hook Form", "7.x", "高性能表单校验与状态管理", entity.PriorityRecommended)
	}
	if strings.Contains(features, "支付") {
		push("支付 SDK", "Stripe / 微信支付", "", "覆盖国内外主流支付渠道", entity.PriorityMustHave)
	}
	if strings.Contains(features, "实时") || strings.Contains(features, "聊天") || strings.Contains(features, "消息") {
		push("实时通信", "Socket.IO", "4.x", "双向实时通信，自动降级兼容", entity.PriorityMustHave)
	}
	if strings.Contains(features, "上传") || strings.Contains(features, "文件") {
		push("对象存储", "阿里云 OSS / AWS S3", "", "文件上传与静态资源托管", entity.PriorityRecommended)
	}
	if strings.Contains(features, "搜索") {
		push("搜索引擎", "Elasticsearch", "8.x", "全文检索与复杂查询场景", entity.PriorityOptional)
	}

	// 后端部分：企业/电商/后台类项目需要完整服务端
	needBackend := strings.Contains(category, "企业") || strings.Contains(category, "电商") ||
		strings.Contains(category, "后台") || strings.Contains(category, "全栈") ||
		complexity.Level == entity.ComplexityComplex || complexity.Level == entity.ComplexityEnterprise
	if needBackend {
		push("后端框架", "NestJS", "10.x", "结构化的 Node.js 服务端框架，利于团队协作", entity.PriorityMustHave)
		push("数据库", "PostgreSQL", "16", "功能完备的关系型数据库", entity.PriorityMustHave)
		push("缓存", "Redis", "7.x", "热点数据缓存与会话存储", entity.PriorityRecommended)
		push("ORM", "Prisma", "5.x", "类型安全的数据库访问层", entity.PriorityRecommended)
		push("API 风格", "RESTful + OpenAPI", "", "标准化接口设计，便于前后端协作", entity.PriorityRecommended)
		push("认证授权", "JWT + RBAC", "", "无状态认证配合角色权限控制", entity.PriorityMustHave)
	}

	if complexity.Level == entity.ComplexityEnterprise {
		push("微服务架构", "Kubernetes + 服务网格", "", "企业级拆分部署与弹性伸缩", entity.PriorityRecommended)
		push("消息队列", "RabbitMQ", "3.x", "服务间异步解耦", entity.PriorityRecommended)
	}

	if complexity.Level == entity.ComplexityComplex || complexity.Level == entity.ComplexityEnterprise {
		push("容器化 / CI", "Docker + GitHub Actions", "", "环境一致性与自动化流水线", entity.PriorityRecommended)
		push("监控告警", "Prometheus + Grafana", "", "服务指标采集与可视化告警", entity.PriorityRecommended)
		push("部署平台", "阿里云 / AWS", "", "生产级云端部署", entity.PriorityRecommended)
	} else {
		push("部署平台", "Vercel / Netlify", "", "托管式部署，零运维成本", entity.PriorityRecommended)
	}

	// 通用工程化条目：与输入无关，始终存在
	push("包管理", "pnpm", "9.x", "安装速度快、磁盘占用低", entity.PriorityRecommended)
	push("代码质量", "ESLint + Prettier", "", "统一代码风格与静态检查", entity.PriorityMustHave)
	push("类型系统", "TypeScript", "5.x", "编译期类型检查，降低维护成本", entity.PriorityRecommended)
	push("版本控制", "Git + GitHub", "", "代码版本管理与协作", entity.PriorityMustHave)
	push("测试框架", "Vitest + Testing Library", "", "单元测试与组件测试", entity.PriorityRecommended)

	return stack
}

// platformMatches 判断目标平台列表中是否包含任一关键词（忽略大小写）
func platformMatches(platforms []string, keywords ...string) bool {
	for _, p := range platforms {
		lp := strings.ToLower(p)
		for _, kw := range keywords {
			if strings.Contains(lp, kw) {
				return true
			}
		}
	}
	return false
}
